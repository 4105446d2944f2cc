package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

type FavoritesRepo struct{ db *sql.DB }

func NewFavoritesRepo(db *sql.DB) *FavoritesRepo { return &FavoritesRepo{db: db} }

// Add records the (session, property) pair. Re-adding an existing pair is a
// success, not an error; a missing property is domain.ErrNotFound.
func (r *FavoritesRepo) Add(ctx context.Context, sessionID string, propertyID int64) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM properties WHERE id = $1`, propertyID).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO favorites (user_session_id, property_id)
VALUES ($1, $2)
ON CONFLICT (user_session_id, property_id) DO NOTHING`,
		sessionID, propertyID)
	if err != nil {
		// The property can vanish between the existence check and the
		// insert; surface that as not-found, same as the upfront check.
		if errors.Is(classify(err), domain.ErrForeignKey) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("add favorite: %w", classify(err))
	}
	return nil
}

func (r *FavoritesRepo) Remove(ctx context.Context, sessionID string, propertyID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_session_id = $1 AND property_id = $2`,
		sessionID, propertyID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *FavoritesRepo) IsFavorited(ctx context.Context, sessionID string, propertyID int64) (bool, error) {
	var favorited bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_session_id = $1 AND property_id = $2)`,
		sessionID, propertyID).Scan(&favorited)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return favorited, nil
}

// ListForSession returns the session's favorited properties with their
// galleries, newest-favorited first.
func (r *FavoritesRepo) ListForSession(ctx context.Context, sessionID string) ([]domain.Property, error) {
	query := `
SELECT
  p.id,
  p.project_name,
  p.builder_name,
  p.location,
  p.price,
  p.description,
  p.main_image,
  p.bedrooms,
  p.bathrooms,
  p.area,
  p.property_type,
  p.year_built,
  p.parking,
  p.floors,
  p.created_at,
  p.updated_at,
  COALESCE(
    json_agg(pi.image_url ORDER BY pi.id) FILTER (WHERE pi.image_url IS NOT NULL),
    '[]'
  ) AS gallery_images
FROM properties p
JOIN favorites f ON f.property_id = p.id AND f.user_session_id = $1
LEFT JOIN property_images pi ON pi.property_id = p.id
GROUP BY p.id, f.created_at
ORDER BY f.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := []domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("list favorites: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return out, nil
}
