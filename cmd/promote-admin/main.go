package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/database"
	"github.com/soupclass/soup-backend/internal/logger"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

func main() {
	var email string
	flag.StringVar(&email, "email", "", "Email of the account to promote")
	flag.Parse()

	if email == "" {
		fmt.Println("Usage: promote-admin -email <address>")
		os.Exit(2)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	fmt.Println("=== Promote User to Admin ===")

	u, err := userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		fmt.Printf("Error: no account with email %s\n", email)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up user")
	}

	if u.Role == model.RoleAdmin && u.Status == model.StatusActive && u.EmailConfirmed {
		fmt.Printf("'%s' is already an active admin. Nothing to do.\n", u.Email)
		return
	}

	// Admins must be able to sign in, so the account is activated and confirmed too.
	u.Role = model.RoleAdmin
	u.Status = model.StatusActive
	u.EmailConfirmed = true
	if err := userRepo.Upsert(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("Failed to promote user")
	}

	fmt.Printf("\nSuccess! '%s' (ID %d) now has the Admin role with permissions: %v\n",
		u.Email, u.ID, model.PermissionsFor(model.RoleAdmin))
}
