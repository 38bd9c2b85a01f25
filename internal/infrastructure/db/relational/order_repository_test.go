package relational

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

func newOrder(owner int64, qty int) *domain.Order {
	now := time.Now().UTC()
	return &domain.Order{
		Quantity:  qty,
		PizzaSize: domain.SizeSmall,
		Status:    domain.StatusPending,
		OwnerID:   owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seedOrders(t *testing.T, repo *OrderRepository, owners ...int64) []*domain.Order {
	t.Helper()
	out := make([]*domain.Order, 0, len(owners))
	for i, owner := range owners {
		o, err := repo.Create(context.Background(), newOrder(owner, i+1))
		require.NoError(t, err)
		out = append(out, o)
	}
	return out
}

func TestOrderRepository_CreateAndFind(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newOrder(7, 3))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, domain.SizeSmall, got.PizzaSize)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, int64(7), got.OwnerID)

	_, err = repo.FindByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepository_List(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	seedOrders(t, repo, 1, 2, 1, 3)

	all, err := repo.List(context.Background(), ports.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID, "ascending id order")
	}

	owner := int64(1)
	own, err := repo.List(context.Background(), ports.OrderFilter{OwnerID: &owner})
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, o := range own {
		assert.Equal(t, owner, o.OwnerID)
	}

	nobody := int64(99)
	none, err := repo.List(context.Background(), ports.OrderFilter{OwnerID: &nobody})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderRepository_Update(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	orders := seedOrders(t, repo, 1)
	id := orders[0].ID

	qty := 10
	size := domain.SizeLarge
	updated, err := repo.Update(context.Background(), id, ports.OrderUpdate{Quantity: &qty, PizzaSize: &size})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)
	assert.Equal(t, domain.SizeLarge, updated.PizzaSize)
	assert.Equal(t, domain.StatusPending, updated.Status)

	status := domain.StatusDelivered
	updated, err = repo.Update(context.Background(), id, ports.OrderUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	assert.Equal(t, 10, updated.Quantity)

	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, stored.Status)

	_, err = repo.Update(context.Background(), id+1, ports.OrderUpdate{Status: &status})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepository_Delete(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	orders := seedOrders(t, repo, 1, 2)

	require.NoError(t, repo.Delete(context.Background(), orders[0].ID))
	_, err := repo.FindByID(context.Background(), orders[0].ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	err = repo.Delete(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	rest, err := repo.List(context.Background(), ports.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
