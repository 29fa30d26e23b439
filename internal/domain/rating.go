package domain

import "time"

// Rating represents a single user's rating of a store. At most one rating
// exists per (user, store) pair; resubmission overwrites the value in place.
type Rating struct {
	ID        string
	UserID    string
	StoreID   string
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
