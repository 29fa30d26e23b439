package domain

import "time"

// Store represents a rateable storefront owned by a STORE-role user.
type Store struct {
	ID        string
	Name      string
	Email     string
	Address   string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreWithRating pairs a store with its average rating, computed from the
// ratings table at query time. AverageRating is 0 when no ratings exist.
type StoreWithRating struct {
	Store
	AverageRating float64
}
