package ports

import (
	"context"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

// CreateOrderInput is the DTO passed from the transport layer to OrderService.
type CreateOrderInput struct {
	Quantity  int
	PizzaSize string // optional, defaults to SMALL
}

// UpdateOrderInput changes quantity and, when set, pizza size.
type UpdateOrderInput struct {
	Quantity  int
	PizzaSize string // optional, keeps the current size when empty
}

// OrderService defines use-case operations for orders. Every call takes the
// resolved caller.
type OrderService interface {
	Create(ctx context.Context, caller *domain.User, input CreateOrderInput) (*domain.Order, error)
	// List returns every order for staff and the caller's own orders otherwise.
	List(ctx context.Context, caller *domain.User) ([]*domain.Order, error)
	ListOwn(ctx context.Context, caller *domain.User) ([]*domain.Order, error)
	// Get returns any order by id. Staff only.
	Get(ctx context.Context, caller *domain.User, id int64) (*domain.Order, error)
	// GetOwn returns the order only when the caller owns it.
	GetOwn(ctx context.Context, caller *domain.User, id int64) (*domain.Order, error)
	UpdateFields(ctx context.Context, caller *domain.User, id int64, input UpdateOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, caller *domain.User, id int64, status string) (*domain.Order, error)
	Delete(ctx context.Context, caller *domain.User, id int64) error
}
