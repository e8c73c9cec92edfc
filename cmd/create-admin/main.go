package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/nexlearn/nexlearn-backend/internal/config"
	"github.com/nexlearn/nexlearn-backend/internal/database"
	"github.com/nexlearn/nexlearn-backend/internal/logger"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/repository"
	"github.com/nexlearn/nexlearn-backend/internal/service"
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

	// ─── Initialize Services ───────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, userRepo, log)
	userService := service.NewUserService(userRepo)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if password == "" || len(password) > 72 {
		fmt.Println("Error: Password must be 1 to 72 bytes")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Accounts are always created as students, then promoted.
	user, err := authService.Register(ctx, &model.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	if _, err := userService.SetRoleByEmail(ctx, user.Email, model.RoleAdmin); err != nil {
		log.Fatal().Err(err).Msg("Failed to promote user to admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %s\n", user.Name, user.Email, user.ID)
}
