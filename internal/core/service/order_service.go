package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// Create places an order owned by the caller. Input is validated before the
// store is touched.
func (s *OrderService) Create(ctx context.Context, caller *domain.User, input ports.CreateOrderInput) (*domain.Order, error) {
	if err := domain.Authorize(caller, domain.ActionCreateOrder); err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(input.Quantity); err != nil {
		return nil, err
	}

	size := domain.SizeSmall
	if input.PizzaSize != "" {
		parsed, err := domain.ParsePizzaSize(input.PizzaSize)
		if err != nil {
			return nil, err
		}
		size = parsed
	}

	now := time.Now().UTC()
	order, err := s.repo.Create(ctx, &domain.Order{
		Quantity:  input.Quantity,
		PizzaSize: size,
		Status:    domain.StatusPending,
		OwnerID:   caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", caller.ID).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().Int64("order_id", order.ID).Int64("owner_id", order.OwnerID).Str("pizza_size", string(order.PizzaSize)).Msg("order created")
	return order, nil
}

func (s *OrderService) List(ctx context.Context, caller *domain.User) ([]*domain.Order, error) {
	if caller == nil {
		return nil, domain.ErrUserNotFound
	}
	if domain.Allowed(caller.IsStaff, domain.ActionListAllOrders) {
		return s.repo.List(ctx, ports.OrderFilter{})
	}
	return s.ListOwn(ctx, caller)
}

func (s *OrderService) ListOwn(ctx context.Context, caller *domain.User) ([]*domain.Order, error) {
	if err := domain.Authorize(caller, domain.ActionReadOwnOrders); err != nil {
		return nil, err
	}
	owner := caller.ID
	return s.repo.List(ctx, ports.OrderFilter{OwnerID: &owner})
}

func (s *OrderService) Get(ctx context.Context, caller *domain.User, id int64) (*domain.Order, error) {
	if err := domain.Authorize(caller, domain.ActionReadAnyOrder); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// GetOwn hides orders of other users behind ErrOrderNotFound.
func (s *OrderService) GetOwn(ctx context.Context, caller *domain.User, id int64) (*domain.Order, error) {
	if err := domain.Authorize(caller, domain.ActionReadOwnOrders); err != nil {
		return nil, err
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.OwnerID != caller.ID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// UpdateFields is open to any authenticated caller and does not check
// ownership.
func (s *OrderService) UpdateFields(ctx context.Context, caller *domain.User, id int64, input ports.UpdateOrderInput) (*domain.Order, error) {
	if err := domain.Authorize(caller, domain.ActionUpdateOrder); err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(input.Quantity); err != nil {
		return nil, err
	}

	patch := ports.OrderUpdate{Quantity: &input.Quantity}
	if input.PizzaSize != "" {
		size, err := domain.ParsePizzaSize(input.PizzaSize)
		if err != nil {
			return nil, err
		}
		patch.PizzaSize = &size
	}

	order, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("order_id", id).Int64("caller_id", caller.ID).Int("quantity", order.Quantity).Msg("order updated")
	return order, nil
}

// UpdateStatus checks the caller's role before parsing the status or looking
// the order up.
func (s *OrderService) UpdateStatus(ctx context.Context, caller *domain.User, id int64, status string) (*domain.Order, error) {
	if err := domain.Authorize(caller, domain.ActionUpdateOrderStatus); err != nil {
		return nil, err
	}
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Update(ctx, id, ports.OrderUpdate{Status: &next})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("order_id", id).Int64("caller_id", caller.ID).Str("status", string(next)).Msg("order status updated")
	return order, nil
}

// Delete is open to any authenticated caller and does not check ownership.
func (s *OrderService) Delete(ctx context.Context, caller *domain.User, id int64) error {
	if err := domain.Authorize(caller, domain.ActionDeleteOrder); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("order_id", id).Int64("caller_id", caller.ID).Msg("order deleted")
	return nil
}
