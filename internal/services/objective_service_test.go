package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/waitumusic/backend/internal/models"
	"github.com/waitumusic/backend/internal/rbac"
	"go.uber.org/zap"
)

// fakeObjectiveStore keeps objectives in memory, mirroring the repo's
// contract including seed-once semantics.
type fakeObjectiveStore struct {
	objectives map[uuid.UUID]*models.InternalObjective
	order      []uuid.UUID
}

func newFakeObjectiveStore() *fakeObjectiveStore {
	return &fakeObjectiveStore{objectives: make(map[uuid.UUID]*models.InternalObjective)}
}

func (f *fakeObjectiveStore) Create(_ context.Context, o *models.InternalObjective) error {
	o.ID = uuid.New()
	f.objectives[o.ID] = o
	f.order = append(f.order, o.ID)
	return nil
}

func (f *fakeObjectiveStore) CreateBatch(ctx context.Context, objectives []*models.InternalObjective) error {
	for _, o := range objectives {
		if err := f.Create(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeObjectiveStore) SeedBooking(ctx context.Context, bookingID int64, objectives []*models.InternalObjective) (bool, error) {
	existing, _ := f.ListByBooking(ctx, bookingID)
	if len(existing) > 0 {
		return false, nil
	}
	return true, f.CreateBatch(ctx, objectives)
}

func (f *fakeObjectiveStore) GetByID(_ context.Context, id uuid.UUID) (*models.InternalObjective, error) {
	o, ok := f.objectives[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return o, nil
}

func (f *fakeObjectiveStore) ListByBooking(_ context.Context, bookingID int64) ([]models.InternalObjective, error) {
	var out []models.InternalObjective
	for _, id := range f.order {
		if f.objectives[id].BookingID == bookingID {
			out = append(out, *f.objectives[id])
		}
	}
	return out, nil
}

func (f *fakeObjectiveStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*models.InternalObjective, error) {
	o, ok := f.objectives[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	o.Status = status
	return o, nil
}

type fakeAudit struct {
	entries []models.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, entry models.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func newTestObjectiveService() (*ObjectiveService, *fakeObjectiveStore, *fakeAudit) {
	store := newFakeObjectiveStore()
	audit := &fakeAudit{}
	svc := NewObjectiveService(store, audit, nil, zap.NewNop())
	return svc, store, audit
}

func staffActor() Identity {
	return Identity{UserID: uuid.New(), Role: rbac.RoleManagedArtist}
}

func adminActor() Identity {
	return Identity{UserID: uuid.New(), Role: rbac.RoleAdmin}
}

func TestListForBooking_SeedsStandardPlanOnce(t *testing.T) {
	svc, _, _ := newTestObjectiveService()
	ctx := context.Background()

	first, err := svc.ListForBooking(ctx, 42, staffActor())
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 5 {
		t.Fatalf("first read seeded %d objectives, want 5", len(first))
	}

	second, err := svc.ListForBooking(ctx, 42, staffActor())
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 5 {
		t.Fatalf("second read returned %d objectives, want 5", len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("objective %d: id changed between reads", i)
		}
	}

	for _, o := range first {
		if !o.Confidential {
			t.Errorf("seeded objective %q is not confidential", o.Title)
		}
		if o.BookingID != 42 {
			t.Errorf("seeded objective %q has booking_id %d, want 42", o.Title, o.BookingID)
		}
		if o.Status != models.ObjectiveStatusPlanning {
			t.Errorf("seeded objective %q has status %q, want planning", o.Title, o.Status)
		}
	}
}

func TestListForBooking_DeniedRoles(t *testing.T) {
	svc, _, _ := newTestObjectiveService()
	ctx := context.Background()

	for _, role := range []string{rbac.RoleBooker, rbac.RoleFan, rbac.RoleArtist, rbac.RoleMusician, rbac.RoleProfessional, "unknown"} {
		t.Run(role, func(t *testing.T) {
			_, err := svc.ListForBooking(ctx, 1, Identity{UserID: uuid.New(), Role: role})
			if !errors.Is(err, ErrAccessDenied) {
				t.Errorf("role %q: got %v, want ErrAccessDenied", role, err)
			}
		})
	}
}

func TestCreate_ForcesConfidential(t *testing.T) {
	svc, _, audit := newTestObjectiveService()
	actor := staffActor()

	created, err := svc.Create(context.Background(), CreateObjectiveInput{
		BookingID:     7,
		ObjectiveType: models.ObjectiveTypeMarketing,
		Title:         "Press outreach",
		Priority:      models.PriorityHigh,
	}, actor)
	if err != nil {
		t.Fatal(err)
	}
	if !created.Confidential {
		t.Error("created objective is not confidential")
	}
	if created.Status != models.ObjectiveStatusPlanning {
		t.Errorf("status = %q, want planning", created.Status)
	}
	if created.CreatedBy != actor.UserID {
		t.Error("created_by is not the acting user")
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != "objective_created" {
		t.Errorf("audit entries = %+v, want one objective_created", audit.entries)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestObjectiveService()

	tests := []struct {
		name  string
		input CreateObjectiveInput
	}{
		{"unknown type", CreateObjectiveInput{BookingID: 1, ObjectiveType: "networking", Title: "x"}},
		{"empty title", CreateObjectiveInput{BookingID: 1, ObjectiveType: models.ObjectiveTypeMarketing}},
		{"unknown priority", CreateObjectiveInput{BookingID: 1, ObjectiveType: models.ObjectiveTypeMarketing, Title: "x", Priority: "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input, staffActor())
			if !errors.Is(err, ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreate_DefaultsPriorityToMedium(t *testing.T) {
	svc, _, _ := newTestObjectiveService()

	created, err := svc.Create(context.Background(), CreateObjectiveInput{
		BookingID:     1,
		ObjectiveType: models.ObjectiveTypeRevenue,
		Title:         "Merch push",
	}, staffActor())
	if err != nil {
		t.Fatal(err)
	}
	if created.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want medium", created.Priority)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := newTestObjectiveService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateObjectiveInput{
		BookingID:     9,
		ObjectiveType: models.ObjectiveTypePhotography,
		Title:         "Shoot",
	}, staffActor())
	if err != nil {
		t.Fatal(err)
	}

	// Any status may follow any other, including jumping straight to
	// completed and back.
	for _, status := range []string{
		models.ObjectiveStatusCompleted,
		models.ObjectiveStatusPlanning,
		models.ObjectiveStatusCancelled,
		models.ObjectiveStatusInProgress,
	} {
		updated, err := svc.UpdateStatus(ctx, created.ID, status, staffActor())
		if err != nil {
			t.Fatalf("UpdateStatus(%q): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}

	if _, err := svc.UpdateStatus(ctx, created.ID, "done", staffActor()); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid status: got %v, want ErrValidation", err)
	}
	if _, err := svc.UpdateStatus(ctx, uuid.New(), models.ObjectiveStatusCompleted, staffActor()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing objective: got %v, want ErrNotFound", err)
	}
}

func TestAutoGenerate_NonManagedArtist(t *testing.T) {
	svc, store, _ := newTestObjectiveService()

	generated, err := svc.AutoGenerate(context.Background(), 5, uuid.New(), "live_performance", false, staffActor())
	if err != nil {
		t.Fatal(err)
	}
	if len(generated) != 0 {
		t.Errorf("generated %d objectives for non-managed artist, want 0", len(generated))
	}
	if len(store.objectives) != 0 {
		t.Errorf("store has %d objectives, want 0", len(store.objectives))
	}
}

func TestAutoGenerate_ManagedArtist(t *testing.T) {
	svc, _, _ := newTestObjectiveService()
	actor := adminActor()

	generated, err := svc.AutoGenerate(context.Background(), 5, uuid.New(), "live_performance", true, actor)
	if err != nil {
		t.Fatal(err)
	}
	if len(generated) != 3 {
		t.Fatalf("generated %d objectives, want 3", len(generated))
	}

	types := map[string]bool{}
	for _, o := range generated {
		types[o.ObjectiveType] = true
		if o.BookingID != 5 {
			t.Errorf("objective %q booking_id = %d, want 5", o.Title, o.BookingID)
		}
		if !o.Confidential {
			t.Errorf("objective %q is not confidential", o.Title)
		}
		if o.CreatedBy != actor.UserID {
			t.Errorf("objective %q created_by is not the acting user", o.Title)
		}
	}
	for _, want := range []string{models.ObjectiveTypePhotography, models.ObjectiveTypeSocialMedia, models.ObjectiveTypeRevenue} {
		if !types[want] {
			t.Errorf("missing generated objective type %q", want)
		}
	}
}

func TestReport_RequiresReportPermission(t *testing.T) {
	svc, _, _ := newTestObjectiveService()

	// Managed talent can manage objectives but not read reports.
	_, err := svc.Report(context.Background(), 1, staffActor())
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("got %v, want ErrAccessDenied", err)
	}
}

func TestReport_AggregatesSeededPlan(t *testing.T) {
	svc, _, _ := newTestObjectiveService()
	ctx := context.Background()
	actor := adminActor()

	report, err := svc.Report(ctx, 100, actor)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalObjectives != 5 {
		t.Fatalf("total = %d, want 5", report.TotalObjectives)
	}
	if report.CompletedObjectives != 0 || report.CompletionRate != 0 {
		t.Errorf("fresh plan: completed = %d rate = %v, want 0/0", report.CompletedObjectives, report.CompletionRate)
	}
	if report.PendingObjectives != 5 {
		t.Errorf("pending = %d, want 5", report.PendingObjectives)
	}

	// Standard plan: photography + social_media + videography + revenue + strategic
	if report.ProfessionalInvolvement.Photographers != 1 ||
		report.ProfessionalInvolvement.Videographers != 1 ||
		report.ProfessionalInvolvement.SocialMediaSpecialists != 1 ||
		report.ProfessionalInvolvement.MarketingSpecialists != 0 {
		t.Errorf("involvement = %+v", report.ProfessionalInvolvement)
	}

	// 500 + 300 + 1000 + 1000 + 200
	if report.EstimatedROI != 3000 {
		t.Errorf("estimated ROI = %d, want 3000", report.EstimatedROI)
	}
}

func TestReport_CompletionRate(t *testing.T) {
	svc, _, _ := newTestObjectiveService()
	ctx := context.Background()
	actor := adminActor()

	objectives, err := svc.ListForBooking(ctx, 200, actor)
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range objectives[:2] {
		if _, err := svc.UpdateStatus(ctx, o.ID, models.ObjectiveStatusCompleted, actor); err != nil {
			t.Fatal(err)
		}
	}

	report, err := svc.Report(ctx, 200, actor)
	if err != nil {
		t.Fatal(err)
	}
	if report.CompletedObjectives != 2 {
		t.Errorf("completed = %d, want 2", report.CompletedObjectives)
	}
	if report.CompletionRate != 40 {
		t.Errorf("completion rate = %v, want 40", report.CompletionRate)
	}
	if report.CompletedObjectives > report.TotalObjectives {
		t.Error("completed exceeds total")
	}
}

func TestTemplates_CatalogShape(t *testing.T) {
	svc, _, _ := newTestObjectiveService()

	templates := svc.Templates()
	if len(templates) != 3 {
		t.Fatalf("catalog has %d templates, want 3", len(templates))
	}
	seen := map[int]bool{}
	for _, tpl := range templates {
		if seen[tpl.ID] {
			t.Errorf("duplicate template id %d", tpl.ID)
		}
		seen[tpl.ID] = true
		if len(tpl.Objectives) == 0 {
			t.Errorf("template %q has no objectives", tpl.Name)
		}
		for _, o := range tpl.Objectives {
			if !models.IsValidPriority(o.Priority) {
				t.Errorf("template %q objective %q has invalid priority %q", tpl.Name, o.Title, o.Priority)
			}
		}
	}
}

func TestConcurrentFirstRead_SingleSeed(t *testing.T) {
	// The fake store seeds at most once per booking, matching the repo's
	// advisory-lock behavior. Sequential double-read must not duplicate.
	svc, store, _ := newTestObjectiveService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.ListForBooking(ctx, 77, adminActor()); err != nil {
			t.Fatal(err)
		}
	}
	var count int
	for _, o := range store.objectives {
		if o.BookingID == 77 {
			count++
		}
	}
	if count != 5 {
		t.Errorf("booking has %d objectives after repeated reads, want 5", count)
	}
}

func TestErrValidationWrapping(t *testing.T) {
	svc, _, _ := newTestObjectiveService()
	_, err := svc.Create(context.Background(), CreateObjectiveInput{
		BookingID:     1,
		ObjectiveType: "bogus",
		Title:         "x",
	}, staffActor())
	if err == nil {
		t.Fatal("expected error")
	}
	wrapped := fmt.Errorf("handler: %w", err)
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("validation error lost through wrapping")
	}
}
