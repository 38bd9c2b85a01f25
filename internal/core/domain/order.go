package domain

import (
	"fmt"
	"strings"
	"time"
)

// PizzaSize is the size of the pizzas in an order.
type PizzaSize string

const (
	SizeSmall      PizzaSize = "SMALL"
	SizeMedium     PizzaSize = "MEDIUM"
	SizeLarge      PizzaSize = "LARGE"
	SizeExtraLarge PizzaSize = "EXTRA_LARGE"
)

var pizzaSizes = []PizzaSize{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge}

// OrderStatus is the delivery state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
)

var orderStatuses = []OrderStatus{StatusPending, StatusInTransit, StatusDelivered}

// Order is a pizza order owned by exactly one user.
type Order struct {
	ID        int64       `json:"id"`
	Quantity  int         `json:"quantity"`
	PizzaSize PizzaSize   `json:"pizza_size"`
	Status    OrderStatus `json:"order_status"`
	OwnerID   int64       `json:"owner_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ParsePizzaSize accepts any casing of a known size.
func ParsePizzaSize(s string) (PizzaSize, error) {
	v := PizzaSize(strings.ToUpper(strings.TrimSpace(s)))
	for _, size := range pizzaSizes {
		if v == size {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: pizza_size must be one of %s", ErrValidation, joinValues(pizzaSizes))
}

// ParseOrderStatus accepts any casing of a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	v := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range orderStatuses {
		if v == status {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: order_status must be one of %s", ErrValidation, joinValues(orderStatuses))
}

// ValidateQuantity rejects zero and negative quantities.
func ValidateQuantity(q int) error {
	if q <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}
	return nil
}

func joinValues[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
