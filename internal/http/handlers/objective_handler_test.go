package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/waitumusic/backend/internal/auth"
	"github.com/waitumusic/backend/internal/config"
	"github.com/waitumusic/backend/internal/http/dto"
	"github.com/waitumusic/backend/internal/middleware"
	"github.com/waitumusic/backend/internal/models"
	"github.com/waitumusic/backend/internal/rbac"
	"github.com/waitumusic/backend/internal/services"
	"go.uber.org/zap"
)

const testSecret = "handler-test-secret"

// memObjectiveStore is an in-memory services.ObjectiveStore for transport
// tests.
type memObjectiveStore struct {
	objectives map[uuid.UUID]*models.InternalObjective
	order      []uuid.UUID
}

func newMemObjectiveStore() *memObjectiveStore {
	return &memObjectiveStore{objectives: make(map[uuid.UUID]*models.InternalObjective)}
}

func (m *memObjectiveStore) Create(_ context.Context, o *models.InternalObjective) error {
	o.ID = uuid.New()
	m.objectives[o.ID] = o
	m.order = append(m.order, o.ID)
	return nil
}

func (m *memObjectiveStore) CreateBatch(ctx context.Context, objectives []*models.InternalObjective) error {
	for _, o := range objectives {
		if err := m.Create(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func (m *memObjectiveStore) SeedBooking(ctx context.Context, bookingID int64, objectives []*models.InternalObjective) (bool, error) {
	existing, _ := m.ListByBooking(ctx, bookingID)
	if len(existing) > 0 {
		return false, nil
	}
	return true, m.CreateBatch(ctx, objectives)
}

func (m *memObjectiveStore) GetByID(_ context.Context, id uuid.UUID) (*models.InternalObjective, error) {
	o, ok := m.objectives[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return o, nil
}

func (m *memObjectiveStore) ListByBooking(_ context.Context, bookingID int64) ([]models.InternalObjective, error) {
	var out []models.InternalObjective
	for _, id := range m.order {
		if m.objectives[id].BookingID == bookingID {
			out = append(out, *m.objectives[id])
		}
	}
	return out, nil
}

func (m *memObjectiveStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*models.InternalObjective, error) {
	o, ok := m.objectives[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	o.Status = status
	return o, nil
}

type memAudit struct{}

func (memAudit) Log(context.Context, models.AuditLog) error { return nil }

func newObjectiveTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{JWTSecret: testSecret}
	log := zap.NewNop()

	svc := services.NewObjectiveService(newMemObjectiveStore(), memAudit{}, nil, log)
	handler := NewObjectiveHandler(svc, log)

	app := fiber.New()
	api := app.Group("/api/v1", middleware.AuthMiddleware(cfg, log))

	objectives := api.Group("/internal-objectives")
	objectives.Get("/templates", handler.Templates)
	objectives.Get("/booking/:bookingId/report",
		middleware.RequirePermission(rbac.PermViewObjectiveReports), handler.Report)

	manage := objectives.Group("", middleware.RequirePermission(rbac.PermManageInternalObjectives))
	manage.Get("/booking/:bookingId", handler.ListForBooking)
	manage.Post("/create", handler.Create)
	manage.Patch("/:objectiveId/status", handler.UpdateStatus)
	manage.Post("/auto-generate", handler.AutoGenerate)

	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateJWT(testSecret, uuid.New(), role, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, raw
}

func TestObjectives_RequireAuthentication(t *testing.T) {
	app := newObjectiveTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/booking/1", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/booking/1", "garbage-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", resp.StatusCode)
	}
}

func TestObjectives_BookerCannotRead(t *testing.T) {
	app := newObjectiveTestApp(t)

	for _, role := range []string{rbac.RoleBooker, rbac.RoleFan, rbac.RoleArtist} {
		t.Run(role, func(t *testing.T) {
			resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/booking/1", tokenFor(t, role), nil)
			if resp.StatusCode != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", resp.StatusCode)
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatal(err)
			}
			if body.Success {
				t.Error("success = true on denial")
			}
			if body.Error == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestObjectives_ManagedArtistSeesSeededPlan(t *testing.T) {
	app := newObjectiveTestApp(t)
	token := tokenFor(t, rbac.RoleManagedArtist)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/booking/42", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var body dto.ObjectivesResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success {
		t.Error("success = false")
	}
	if len(body.Objectives) != 5 {
		t.Fatalf("objectives = %d, want 5", len(body.Objectives))
	}
	if body.Note == "" {
		t.Error("missing confidentiality note")
	}
	for _, o := range body.Objectives {
		if !o.Confidential {
			t.Errorf("objective %q not confidential", o.Title)
		}
	}

	// Stable across reads
	_, raw2 := doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/booking/42", token, nil)
	var body2 dto.ObjectivesResponse
	if err := json.Unmarshal(raw2, &body2); err != nil {
		t.Fatal(err)
	}
	if len(body2.Objectives) != 5 || body2.Objectives[0].ID != body.Objectives[0].ID {
		t.Error("objective list changed between reads")
	}
}

func TestObjectives_CreateAndUpdateStatus(t *testing.T) {
	app := newObjectiveTestApp(t)
	token := tokenFor(t, rbac.RoleAdmin)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/v1/internal-objectives/create", token, dto.CreateObjectiveRequest{
		BookingID:     7,
		ObjectiveType: "marketing",
		Title:         "Press outreach",
		Priority:      "high",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, raw)
	}
	var created dto.ObjectiveResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatal(err)
	}
	if !created.Objective.Confidential {
		t.Error("created objective not confidential")
	}

	resp, raw = doRequest(t, app, http.MethodPatch,
		"/api/v1/internal-objectives/"+created.Objective.ID.String()+"/status", token,
		dto.UpdateObjectiveStatusRequest{Status: "completed"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, body %s", resp.StatusCode, raw)
	}
	var updated dto.ObjectiveResponse
	if err := json.Unmarshal(raw, &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Objective.Status != "completed" {
		t.Errorf("status = %q, want completed", updated.Objective.Status)
	}

	// Unknown enum value
	resp, _ = doRequest(t, app, http.MethodPatch,
		"/api/v1/internal-objectives/"+created.Objective.ID.String()+"/status", token,
		dto.UpdateObjectiveStatusRequest{Status: "done"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid status: %d, want 400", resp.StatusCode)
	}

	// Unknown objective
	resp, _ = doRequest(t, app, http.MethodPatch,
		"/api/v1/internal-objectives/"+uuid.NewString()+"/status", token,
		dto.UpdateObjectiveStatusRequest{Status: "completed"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing objective: %d, want 404", resp.StatusCode)
	}
}

func TestObjectives_AutoGenerate(t *testing.T) {
	app := newObjectiveTestApp(t)
	token := tokenFor(t, rbac.RoleAdmin)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/v1/internal-objectives/auto-generate", token, dto.AutoGenerateRequest{
		BookingID:           10,
		ArtistUserID:        uuid.New(),
		BookingType:         "live_performance",
		ArtistManagedStatus: true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}
	var body dto.ObjectivesResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Objectives) != 3 {
		t.Errorf("generated = %d, want 3", len(body.Objectives))
	}

	resp, raw = doRequest(t, app, http.MethodPost, "/api/v1/internal-objectives/auto-generate", token, dto.AutoGenerateRequest{
		BookingID:           11,
		ArtistUserID:        uuid.New(),
		BookingType:         "live_performance",
		ArtistManagedStatus: false,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}
	var none dto.ObjectivesResponse
	if err := json.Unmarshal(raw, &none); err != nil {
		t.Fatal(err)
	}
	if len(none.Objectives) != 0 {
		t.Errorf("generated = %d for non-managed artist, want 0", len(none.Objectives))
	}
}

func TestObjectives_ReportAccess(t *testing.T) {
	app := newObjectiveTestApp(t)

	// Managed talent manages objectives but cannot read reports
	resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/booking/5/report", tokenFor(t, rbac.RoleManagedArtist), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("managed artist report: %d, want 403", resp.StatusCode)
	}

	resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/booking/5/report", tokenFor(t, rbac.RoleAdmin), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin report: %d, body %s", resp.StatusCode, raw)
	}
	var body dto.ReportResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if body.Report == nil || body.Report.TotalObjectives != 5 {
		t.Errorf("report = %+v, want seeded total of 5", body.Report)
	}
	if body.BookingID != 5 {
		t.Errorf("booking id = %d, want 5", body.BookingID)
	}
}

func TestObjectives_Templates(t *testing.T) {
	app := newObjectiveTestApp(t)

	// Any authenticated role may read the catalog
	resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/templates", tokenFor(t, rbac.RoleFan), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}
	var body dto.TemplatesResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Templates) != 3 {
		t.Errorf("templates = %d, want 3", len(body.Templates))
	}
}

func TestObjectives_InvalidBookingID(t *testing.T) {
	app := newObjectiveTestApp(t)
	resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/internal-objectives/booking/not-a-number", tokenFor(t, rbac.RoleAdmin), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
