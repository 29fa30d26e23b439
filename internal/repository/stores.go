package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeratings/storeratings/internal/domain"
)

// StoresRepository provides persistence helpers for stores.
type StoresRepository struct {
	pool *pgxpool.Pool
}

// StoreCreateParams bundles the fields required to create a store.
type StoreCreateParams struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// The average is part of the query itself so every caller sees the same
// rounding rule and no staleness is possible.
const storeWithRatingQuery = `
    SELECT s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at,
           COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0)::float8 AS average_rating
    FROM stores s
    LEFT JOIN ratings r ON r.store_id = s.id
`

// Create inserts a new store row and returns the stored entity.
func (r *StoresRepository) Create(ctx context.Context, params StoreCreateParams) (domain.Store, error) {
	const query = `
        INSERT INTO stores (name, email, address, owner_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, name, email, address, owner_id, created_at, updated_at
    `
	var s domain.Store
	err := r.pool.QueryRow(ctx, query, params.Name, params.Email, params.Address, params.OwnerID).Scan(
		&s.ID, &s.Name, &s.Email, &s.Address, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isBadReference(err) {
			return domain.Store{}, ErrUnknownReference
		}
		return domain.Store{}, err
	}
	return s, nil
}

// ListWithRatings returns every store together with its current average
// rating.
func (r *StoresRepository) ListWithRatings(ctx context.Context) ([]domain.StoreWithRating, error) {
	query := storeWithRatingQuery + ` GROUP BY s.id ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]domain.StoreWithRating, 0)
	for rows.Next() {
		s, err := scanStoreWithRating(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

// GetWithRating fetches one store with its current average rating.
func (r *StoresRepository) GetWithRating(ctx context.Context, id string) (domain.StoreWithRating, error) {
	query := storeWithRatingQuery + ` WHERE s.id = $1 GROUP BY s.id`

	s, err := scanStoreWithRating(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows || isBadReference(err) {
			return domain.StoreWithRating{}, ErrNotFound
		}
		return domain.StoreWithRating{}, err
	}
	return s, nil
}

// Count returns the total number of stores.
func (r *StoresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return count, nil
}

func scanStoreWithRating(row pgx.Row) (domain.StoreWithRating, error) {
	var s domain.StoreWithRating
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Address, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt,
		&s.AverageRating,
	)
	if err != nil {
		return domain.StoreWithRating{}, err
	}
	return s, nil
}
