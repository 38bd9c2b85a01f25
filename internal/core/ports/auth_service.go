package ports

import (
	"context"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

// RegisterInput carries signup data. Nil flags fall back to the configured
// user defaults.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	IsStaff  *bool
	IsActive *bool
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string, all bool) error
}
