package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	m := toOrderModel(order)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return m.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var m orderModel
	if err := r.db.WithContext(ctx).Take(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return m.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	q := r.db.WithContext(ctx).Model(&orderModel{}).Order("id ASC")
	if filter.OwnerID != nil {
		q = q.Where("user_id = ?", *filter.OwnerID)
	}

	var rows []orderModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]*domain.Order, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// Update reads, patches and re-reads the row inside one transaction. The row
// is locked on drivers that support SELECT ... FOR UPDATE.
func (r *OrderRepository) Update(ctx context.Context, id int64, patch ports.OrderUpdate) (*domain.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		read := tx
		if supportsRowLocks(tx) {
			read = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := read.Take(&m, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Quantity != nil {
			updates["quantity"] = *patch.Quantity
		}
		if patch.PizzaSize != nil {
			updates["pizza_size"] = string(*patch.PizzaSize)
		}
		if patch.Status != nil {
			updates["order_status"] = string(*patch.Status)
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Take(&m, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return m.toDomain(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&orderModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func supportsRowLocks(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	default:
		return false
	}
}
