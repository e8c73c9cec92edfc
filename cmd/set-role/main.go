package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nexlearn/nexlearn-backend/internal/config"
	"github.com/nexlearn/nexlearn-backend/internal/database"
	"github.com/nexlearn/nexlearn-backend/internal/logger"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/repository"
	"github.com/nexlearn/nexlearn-backend/internal/service"
)

func main() {
	var email, role string
	flag.StringVar(&email, "email", "", "Email of the account to change")
	flag.StringVar(&role, "role", string(model.RoleAdmin), "New role: admin or student")
	flag.Parse()

	if email == "" {
		fmt.Println("Usage: set-role -email <email> [-role admin|student]")
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

	userService := service.NewUserService(repository.NewUserRepository(pool))

	fmt.Println("=== Change Account Role ===")
	fmt.Println("Existing tokens keep their role claim; admin routes re-read the role on every request.")

	user, err := userService.SetRoleByEmail(ctx, email, model.Role(role))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fmt.Printf("Error: no account with email %s\n", email)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Failed to change role")
	}

	fmt.Printf("\nSuccess! %s (%s) is now %s.\n", user.Name, user.Email, user.Role)
}
