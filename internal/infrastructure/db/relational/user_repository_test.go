package relational

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

func newUser(username, email string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$hash",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "a@x.com", byName.Email)
	assert.Equal(t, "$2a$04$hash", byName.PasswordHash)
	assert.True(t, byName.IsActive)
	assert.False(t, byName.IsStaff)

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserRepository_FalseFlagsPersist(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	u := newUser("dormant", "d@x.com")
	u.IsActive = false
	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	got, err := repo.FindByUsername(ctx, "dormant")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser("alice", "b@x.com"))
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = repo.Create(ctx, newUser("bob", "a@x.com"))
	assert.ErrorIs(t, err, domain.ErrUserExists)

	var count int64
	require.NoError(t, db.Model(&userModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
