package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// Seeder handles database seeding operations
type Seeder struct {
	users repository.UserRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(users repository.UserRepository) *Seeder {
	return &Seeder{users: users}
}

// SeedAdminUser makes sure an admin account exists for email.
// An existing account with that email is promoted to admin.
func (s *Seeder) SeedAdminUser(ctx context.Context, email, name string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		log.Println("⚠️  ADMIN_EMAIL environment variable not set, skipping admin user creation")
		return nil, nil
	}

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsAdmin() {
			log.Println("⏭️  Admin user already exists, skipping...")
			return existing, nil
		}
		existing.Role = model.RoleAdmin
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to promote admin user: %w", err)
		}
		log.Printf("✅ Promoted %s to admin\n", existing.Email)
		return existing, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	if name == "" {
		name = "System Administrator"
	}
	admin := &model.User{
		Name:     name,
		Email:    email,
		Role:     model.RoleAdmin,
		Settings: model.DefaultUserSettings(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return admin, nil
}
