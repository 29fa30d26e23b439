package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeratings/storeratings/internal/domain"
)

// RatingsRepository provides helpers for store ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RatingUpsertParams captures the payload required to upsert a rating.
type RatingUpsertParams struct {
	UserID  string
	StoreID string
	Value   int
}

// UserRatingRow is one entry of a user's own rating list.
type UserRatingRow struct {
	StoreID      string
	StoreName    string
	StoreAddress string
	Rating       int
}

// OwnerRatingRow is one rating received across an owner's stores.
type OwnerRatingRow struct {
	ID        string
	Rating    int
	RatedBy   string
	StoreName string
}

// Upsert inserts or replaces the caller's rating for a store in a single
// conflict-resolving statement and indicates whether it was newly created.
// Concurrent resubmissions for the same (user, store) key resolve to the
// last write; there is no read-then-write window.
func (r *RatingsRepository) Upsert(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, error) {
	const query = `
        INSERT INTO ratings (user_id, store_id, rating)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, store_id)
        DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
        RETURNING id, user_id, store_id, rating, created_at, updated_at, (xmax = 0) AS inserted
    `

	var rating domain.Rating
	var inserted bool
	err := r.pool.QueryRow(ctx, query, params.UserID, params.StoreID, params.Value).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
		&inserted,
	)
	if err != nil {
		if isBadReference(err) {
			return domain.Rating{}, false, ErrUnknownReference
		}
		return domain.Rating{}, false, err
	}

	return rating, inserted, nil
}

// Get retrieves a rating for a specific user/store combination.
func (r *RatingsRepository) Get(ctx context.Context, userID, storeID string) (domain.Rating, error) {
	const query = `
        SELECT id, user_id, store_id, rating, created_at, updated_at
        FROM ratings
        WHERE user_id = $1 AND store_id = $2
    `
	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, userID, storeID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}

// ListForUser returns the stores the given user has rated, with the value
// they submitted.
func (r *RatingsRepository) ListForUser(ctx context.Context, userID string) ([]UserRatingRow, error) {
	const query = `
        SELECT s.id, s.name, s.address, r.rating
        FROM ratings r
        JOIN stores s ON r.store_id = s.id
        WHERE r.user_id = $1
        ORDER BY r.updated_at DESC, r.id DESC
    `
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]UserRatingRow, 0)
	for rows.Next() {
		var e UserRatingRow
		if err := rows.Scan(&e.StoreID, &e.StoreName, &e.StoreAddress, &e.Rating); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListForOwner returns every rating received by stores the given user owns,
// with the rater's name.
func (r *RatingsRepository) ListForOwner(ctx context.Context, ownerID string) ([]OwnerRatingRow, error) {
	const query = `
        SELECT r.id, r.rating, u.name, s.name
        FROM ratings r
        JOIN stores s ON s.id = r.store_id
        JOIN users u ON u.id = r.user_id
        WHERE s.owner_id = $1
        ORDER BY r.updated_at DESC, r.id DESC
    `
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]OwnerRatingRow, 0)
	for rows.Next() {
		var e OwnerRatingRow
		if err := rows.Scan(&e.ID, &e.Rating, &e.RatedBy, &e.StoreName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the total number of ratings.
func (r *RatingsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}
