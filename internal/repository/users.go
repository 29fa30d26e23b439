package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeratings/storeratings/internal/domain"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `
    id,
    name,
    email,
    password_hash,
    address,
    role,
    created_at,
    updated_at
`

// UserCreateParams bundles the fields required to create a user. The password
// arrives already hashed; plaintext never reaches this layer.
type UserCreateParams struct {
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         domain.Role
}

// UserListFilters encapsulates the optional admin listing filters. Substring
// filters match case-insensitively; Role matches exactly. Absent filters add
// no predicate.
type UserListFilters struct {
	Name    *string
	Email   *string
	Address *string
	Role    *domain.Role
}

// Create inserts a new user row and returns the stored entity.
func (r *UsersRepository) Create(ctx context.Context, params UserCreateParams) (domain.User, error) {
	query := fmt.Sprintf(`
        INSERT INTO users (name, email, password_hash, address, role)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, userColumns)

	row := r.pool.QueryRow(ctx, query, params.Name, params.Email, params.PasswordHash, params.Address, string(params.Role))
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByID fetches a user by its identifier.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows || isBadReference(err) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash for a user.
func (r *UsersRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		if isBadReference(err) {
			return ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns users matching the provided filters, combined with AND. A
// filter set that adds no predicate returns every user.
func (r *UsersRepository) List(ctx context.Context, filters UserListFilters) ([]domain.User, error) {
	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Name != nil && strings.TrimSpace(*filters.Name) != "" {
		where = append(where, fmt.Sprintf("name ILIKE %s", arg("%"+strings.TrimSpace(*filters.Name)+"%")))
	}
	if filters.Email != nil && strings.TrimSpace(*filters.Email) != "" {
		where = append(where, fmt.Sprintf("email ILIKE %s", arg("%"+strings.TrimSpace(*filters.Email)+"%")))
	}
	if filters.Address != nil && strings.TrimSpace(*filters.Address) != "" {
		where = append(where, fmt.Sprintf("address ILIKE %s", arg("%"+strings.TrimSpace(*filters.Address)+"%")))
	}
	if filters.Role != nil {
		where = append(where, fmt.Sprintf("role = %s", arg(string(*filters.Role))))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(userColumns)
	queryBuilder.WriteString(" FROM users")
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// OwnerAverage computes the average rating across every store owned by the
// given user, rounded to one decimal, 0 when no ratings exist. Always
// computed fresh from the ratings table.
func (r *UsersRepository) OwnerAverage(ctx context.Context, ownerID string) (float64, error) {
	const query = `
        SELECT COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0)::float8
        FROM ratings r
        JOIN stores s ON s.id = r.store_id
        WHERE s.owner_id = $1
    `
	var avg float64
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("owner average: %w", err)
	}
	return avg, nil
}

// Count returns the total number of users.
func (r *UsersRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		user domain.User
		role string
	)
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Address,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	user.Role = domain.Role(role)
	return user, nil
}
