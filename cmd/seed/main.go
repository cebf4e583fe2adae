package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/database"
	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/utils/auth"
)

func main() {
	tokenFor := flag.String("token", "", "print an access token for the user with this email")
	flag.Parse()

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Println("Warning: .env file could not be loaded, using system environment variables")
	}
	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connection
	store, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("StudyFlow - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := database.NewSeeder(store.Repositories().Users).SeedAdminUser(ctx, cfg.ADMIN_EMAIL, cfg.ADMIN_NAME)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("🎉 Seeding completed successfully!")
	fmt.Println(separator)
	fmt.Println()

	if admin == nil {
		fmt.Println("Admin user is created from the ADMIN_EMAIL environment variable.")
		fmt.Println("If not set, admin user creation is skipped.")
	}

	if *tokenFor == "" {
		return
	}
	if cfg.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET must be set to mint a token")
	}

	user, err := store.Repositories().Users.GetByEmail(ctx, model.NormalizeEmail(*tokenFor))
	if err != nil {
		log.Fatalf("❌ No user with email %s: %v", *tokenFor, err)
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: cfg.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: cfg.JWT_ISSUER,
	})
	token, _, err := jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Printf("Access token for %s (valid 24h):\n%s\n", user.Email, token)
}
