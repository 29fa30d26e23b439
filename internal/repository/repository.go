package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeratings/storeratings/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateEmail indicates a user with that email already exists.
var ErrDuplicateEmail = errors.New("repository: email already registered")

// ErrUnknownReference indicates a write referenced an entity that does not
// exist (e.g. a rating for a missing store, a store for a missing owner).
var ErrUnknownReference = errors.New("repository: referenced entity not found")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users   *UsersRepository
	Stores  *StoresRepository
	Ratings *RatingsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:   &UsersRepository{pool: pool},
		Stores:  &StoresRepository{pool: pool},
		Ratings: &RatingsRepository{pool: pool},
	}
}

// Postgres error classes surfaced as sentinel errors above.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRep      = "22P02"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgUniqueViolation
}

// isBadReference covers both a failed foreign key and a key that cannot even
// be parsed as a UUID; callers treat both as "no such entity".
func isBadReference(err error) bool {
	code := pgErrCode(err)
	return code == pgForeignKeyViolation || code == pgInvalidTextRep
}
