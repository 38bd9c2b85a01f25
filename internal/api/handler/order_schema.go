package handler

import "github.com/pizzadelivery/pizza-api/internal/core/domain"

type createOrderRequest struct {
	Quantity  int    `json:"quantity"             validate:"gt=0"`
	PizzaSize string `json:"pizza_size,omitempty"`
}

type updateOrderRequest struct {
	Quantity  int    `json:"quantity"             validate:"gt=0"`
	PizzaSize string `json:"pizza_size,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"order_status" validate:"required"`
}

type statusUpdateResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}
