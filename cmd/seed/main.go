// Package main provides a CLI tool for seeding the first admin user.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/domain/auth"
	"bagostock/internal/infrastructure/storage/postgres"
	"bagostock/internal/infrastructure/storage/postgres/auth_repo"
	"bagostock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD environment variables are required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalw("failed to hash password", "error", err)
	}

	repo := auth_repo.NewRepo(postgres.NewTxManager(pool))
	user := &auth.User{
		ID:           id.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    time.Now(),
	}

	if err := repo.Create(ctx, user); err != nil {
		if apperror.IsConflict(err) {
			log.Infow("admin user already exists", "username", username)
			return
		}
		log.Fatalw("failed to create admin user", "error", err)
	}

	log.Infow("admin user created", "username", username, "id", user.ID.String())
}
