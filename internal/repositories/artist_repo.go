package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/waitumusic/backend/internal/models"
)

type ArtistRepo struct {
	pool *pgxpool.Pool
}

func NewArtistRepo(pool *pgxpool.Pool) *ArtistRepo {
	return &ArtistRepo{pool: pool}
}

func (r *ArtistRepo) Create(ctx context.Context, a *models.ArtistProfile) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO artists (user_id, stage_name, genre, managed, press_page_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.UserID, a.StageName, a.Genre, a.Managed, a.PressPageURL).Scan(&a.ID, &a.CreatedAt)
}

func (r *ArtistRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ArtistProfile, error) {
	var a models.ArtistProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, stage_name, genre, managed, press_page_url, created_at
		FROM artists WHERE id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.StageName, &a.Genre, &a.Managed, &a.PressPageURL, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

type ArtistFilter struct {
	Managed *bool
	Limit   int
	Offset  int
}

func (r *ArtistRepo) List(ctx context.Context, f ArtistFilter) ([]models.ArtistProfile, error) {
	query := `
		SELECT id, user_id, stage_name, genre, managed, press_page_url, created_at
		FROM artists
	`
	args := []any{}
	if f.Managed != nil {
		query += ` WHERE managed = $1`
		args = append(args, *f.Managed)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY stage_name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []models.ArtistProfile
	for rows.Next() {
		var a models.ArtistProfile
		if err := rows.Scan(&a.ID, &a.UserID, &a.StageName, &a.Genre, &a.Managed, &a.PressPageURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// ListManagedWithPressPage returns the roster entries the press-kit worker
// should refresh.
func (r *ArtistRepo) ListManagedWithPressPage(ctx context.Context) ([]models.ArtistProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, stage_name, genre, managed, press_page_url, created_at
		FROM artists WHERE managed = true AND press_page_url IS NOT NULL
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []models.ArtistProfile
	for rows.Next() {
		var a models.ArtistProfile
		if err := rows.Scan(&a.ID, &a.UserID, &a.StageName, &a.Genre, &a.Managed, &a.PressPageURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}
