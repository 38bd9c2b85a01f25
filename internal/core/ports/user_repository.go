package ports

import (
	"context"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

// UserRepository defines the persistence operations of the credential store.
type UserRepository interface {
	// Create persists a new user and returns it with its generated ID.
	// A unique username or email violation yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
