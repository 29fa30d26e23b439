// Command seed-admin creates the first ADMIN account directly in the
// database, so a fresh deployment has an administrator without going through
// the open registration endpoint.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/storeratings/storeratings/internal/auth"
	"github.com/storeratings/storeratings/internal/domain"
	"github.com/storeratings/storeratings/internal/repository"
)

func main() {
	var (
		dbURL    = flag.String("db-url", os.Getenv("DB_URL"), "postgres connection string")
		name     = flag.String("name", "", "administrator display name")
		email    = flag.String("email", "", "administrator email (unique)")
		password = flag.String("password", "", "administrator password")
		address  = flag.String("address", "", "administrator address")
		cost     = flag.Int("bcrypt-cost", bcrypt.DefaultCost, "bcrypt cost factor")
	)
	flag.Parse()

	if *dbURL == "" {
		log.Fatal("db-url is required (flag or DB_URL)")
	}
	if *name == "" || *email == "" || *password == "" {
		log.Fatal("name, email and password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	hash, err := auth.HashPassword(*password, *cost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	repo := repository.NewWithPool(pool)
	user, err := repo.Users.Create(ctx, repository.UserCreateParams{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Address:      *address,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("created admin %s (%s)", user.ID, user.Email)
}
