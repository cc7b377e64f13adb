// Creates an admin account, or promotes the existing account with that email.
//
// Usage:
//
//	go run ./cmd/createadmin -email admin@example.com -username admin -password 's3cret-pass'
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/config"
	"github.com/nekogravitycat/course-booking-backend/internal/db"
	"github.com/nekogravitycat/course-booking-backend/internal/logger"
	"github.com/nekogravitycat/course-booking-backend/internal/user"
)

func main() {
	email := flag.String("email", "", "email (required)")
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *email == "" || *username == "" || *password == "" {
		log.Fatal("-email, -username and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		zl.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, pool, zl); err != nil {
			zl.Fatal("failed to migrate db", zap.Error(err))
		}
	}

	users := user.NewService(
		user.NewPgxRepository(pool),
		auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost),
		zl,
	)

	u, err := users.EnsureAdmin(ctx, user.RegisterRequest{
		Email:    *email,
		Username: *username,
		Password: *password,
	})
	if err != nil {
		zl.Fatal("failed to ensure admin", zap.Error(err))
	}

	fmt.Printf("admin %q (%s) saved\n", u.Username, u.ID)
}
