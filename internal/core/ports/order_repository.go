package ports

import (
	"context"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

// OrderFilter narrows List. A nil OwnerID returns every order.
type OrderFilter struct {
	OwnerID *int64
}

// OrderUpdate holds the fields to change. Nil fields are left untouched.
type OrderUpdate struct {
	Quantity  *int
	PizzaSize *domain.PizzaSize
	Status    *domain.OrderStatus
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// List returns matching orders in ascending ID order.
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	// Update applies the patch atomically and returns the stored order.
	Update(ctx context.Context, id int64, patch OrderUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
