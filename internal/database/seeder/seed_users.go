package seeder

import (
	"context"
	"errors"
	"fmt"

	"applytrack/internal/domain/user"
	"applytrack/internal/repository"
	"applytrack/internal/usecase/auth"

	"gorm.io/gorm"
)

// DemoUserSeeder registers a login through the normal auth path so the stored
// hash matches what the API produces. An existing account is left untouched.
type DemoUserSeeder struct {
	Username string
	Password string
	Cost     int
}

func (DemoUserSeeder) Name() string { return "demo_user" }

func (s DemoUserSeeder) Run(ctx context.Context, db *gorm.DB) error {
	svc := auth.NewService(repository.NewGormUserRepository(db))
	if s.Cost > 0 {
		svc = svc.WithCost(s.Cost)
	}
	_, err := svc.Register(ctx, auth.RegisterInput{Username: s.Username, Password: s.Password})
	if errors.Is(err, auth.ErrUsernameTaken) {
		return nil
	}
	return err
}

func lookupUser(ctx context.Context, db *gorm.DB, username string) (user.User, error) {
	u, err := repository.NewGormUserRepository(db).GetUserByUsername(ctx, username)
	if errors.Is(err, user.ErrNotFound) {
		return user.User{}, fmt.Errorf("user %q not seeded", username)
	}
	return u, err
}
