package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/waitumusic/backend/internal/models"
)

type ObjectiveRepo struct {
	pool *pgxpool.Pool
}

func NewObjectiveRepo(pool *pgxpool.Pool) *ObjectiveRepo {
	return &ObjectiveRepo{pool: pool}
}

const objectiveColumns = `
	id, booking_id, objective_type, title, description, priority,
	target_deadline, assigned_to, status, confidential, created_by,
	tags, related_professionals, created_at, updated_at`

func scanObjective(row pgx.Row, o *models.InternalObjective) error {
	return row.Scan(
		&o.ID, &o.BookingID, &o.ObjectiveType, &o.Title, &o.Description, &o.Priority,
		&o.TargetDeadline, &o.AssignedTo, &o.Status, &o.Confidential, &o.CreatedBy,
		&o.Tags, &o.RelatedProfessionals, &o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *ObjectiveRepo) Create(ctx context.Context, o *models.InternalObjective) error {
	if o.Tags == nil {
		o.Tags = []string{}
	}
	if o.RelatedProfessionals == nil {
		o.RelatedProfessionals = []uuid.UUID{}
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO internal_objectives
			(booking_id, objective_type, title, description, priority,
			 target_deadline, assigned_to, status, confidential, created_by,
			 tags, related_professionals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, o.BookingID, o.ObjectiveType, o.Title, o.Description, o.Priority,
		o.TargetDeadline, o.AssignedTo, o.Status, o.Confidential, o.CreatedBy,
		o.Tags, o.RelatedProfessionals,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

// CreateBatch inserts objectives in a single transaction so a booking either
// gets its full generated plan or none of it.
func (r *ObjectiveRepo) CreateBatch(ctx context.Context, objectives []*models.InternalObjective) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, o := range objectives {
		if o.Tags == nil {
			o.Tags = []string{}
		}
		if o.RelatedProfessionals == nil {
			o.RelatedProfessionals = []uuid.UUID{}
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO internal_objectives
				(booking_id, objective_type, title, description, priority,
				 target_deadline, assigned_to, status, confidential, created_by,
				 tags, related_professionals)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id, created_at, updated_at
		`, o.BookingID, o.ObjectiveType, o.Title, o.Description, o.Priority,
			o.TargetDeadline, o.AssignedTo, o.Status, o.Confidential, o.CreatedBy,
			o.Tags, o.RelatedProfessionals,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// SeedBooking inserts the given objectives only if the booking has none yet.
// The advisory lock keyed by booking id serializes concurrent first reads so
// a booking gets its standard plan exactly once. Returns false when the
// booking already had objectives.
func (r *ObjectiveRepo) SeedBooking(ctx context.Context, bookingID int64, objectives []*models.InternalObjective) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, bookingID); err != nil {
		return false, err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM internal_objectives WHERE booking_id = $1`, bookingID).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, tx.Rollback(ctx)
	}

	for _, o := range objectives {
		if o.Tags == nil {
			o.Tags = []string{}
		}
		if o.RelatedProfessionals == nil {
			o.RelatedProfessionals = []uuid.UUID{}
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO internal_objectives
				(booking_id, objective_type, title, description, priority,
				 target_deadline, assigned_to, status, confidential, created_by,
				 tags, related_professionals)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id, created_at, updated_at
		`, o.BookingID, o.ObjectiveType, o.Title, o.Description, o.Priority,
			o.TargetDeadline, o.AssignedTo, o.Status, o.Confidential, o.CreatedBy,
			o.Tags, o.RelatedProfessionals,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return false, err
		}
	}

	return true, tx.Commit(ctx)
}

func (r *ObjectiveRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InternalObjective, error) {
	var o models.InternalObjective
	err := scanObjective(r.pool.QueryRow(ctx, `
		SELECT`+objectiveColumns+`
		FROM internal_objectives WHERE id = $1
	`, id), &o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ObjectiveRepo) ListByBooking(ctx context.Context, bookingID int64) ([]models.InternalObjective, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+objectiveColumns+`
		FROM internal_objectives WHERE booking_id = $1
		ORDER BY created_at ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objectives []models.InternalObjective
	for rows.Next() {
		var o models.InternalObjective
		if err := scanObjective(rows, &o); err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

// UpdateStatus sets a new status and returns the updated row.
// Returns pgx.ErrNoRows for unknown ids.
func (r *ObjectiveRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.InternalObjective, error) {
	var o models.InternalObjective
	err := scanObjective(r.pool.QueryRow(ctx, `
		UPDATE internal_objectives SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING`+objectiveColumns+`
	`, status, id), &o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
