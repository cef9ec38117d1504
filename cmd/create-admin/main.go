package main

import (
	"bufio"
	"context"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"syscall"

	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/database"
	"github.com/soupclass/soup-backend/internal/logger"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
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

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		fmt.Println("Error: Name must be at least 2 characters")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		fmt.Println("Error: Email is not valid")
		return
	}

	password, ok := readPassword("Enter Password: ")
	if !ok {
		return
	}
	if len(password) < 8 {
		fmt.Println("Error: Password must be at least 8 characters")
		return
	}
	confirm, ok := readPassword("Confirm Password: ")
	if !ok {
		return
	}
	if confirm != password {
		fmt.Println("Error: Passwords do not match")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin := &model.User{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Role:           model.RoleAdmin,
		Status:         model.StatusActive,
		EmailConfirmed: true,
	}

	// Upsert so re-running the command resets an existing account to a working admin.
	if err := userRepo.Upsert(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) saved with ID: %d\n", admin.Name, admin.Email, admin.ID)
}

// readPassword prompts without echoing input.
func readPassword(prompt string) (string, bool) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return "", false
	}
	return string(raw), true
}
