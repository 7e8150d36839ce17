package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jamizoram/storefront/internal/config"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository/postgres"
)

// Admin identities are provisioned here, never through the public signup
// endpoint - signup hard-codes the shopper role.
func main() {
	nameFlag := flag.String("name", "Admin", "Display name for the admin account")
	emailFlag := flag.String("email", "", "Admin login email")
	passwordFlag := flag.String("password", "", "Admin password (min 6 characters)")
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	email := strings.TrimSpace(strings.ToLower(*emailFlag))
	password := *passwordFlag
	if email == "" || password == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/create-admin/main.go --email admin@example.com --password secret123 [--name \"Store Admin\"]")
		os.Exit(1)
	}
	if len(password) < 6 {
		fmt.Fprintf(os.Stderr, "Error: password must be at least 6 characters.\n")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	admin := &domain.User{
		Name:  strings.TrimSpace(*nameFlag),
		Email: email,
		Role:  domain.RoleAdmin,
	}
	if err := repos.User.Create(context.Background(), admin, string(hash)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created successfully!\n\n")
	fmt.Printf("User ID: %s\n", admin.ID.String())
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("\nSign in through POST /v1/auth/login to get a session token.\n")
}
