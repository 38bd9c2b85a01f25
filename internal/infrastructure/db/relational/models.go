package relational

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

type userModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:64;not null;uniqueIndex"`
	Email        string `gorm:"size:80;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	IsActive     bool   `gorm:"not null"`
	IsStaff      bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type orderModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Quantity    int        `gorm:"not null"`
	PizzaSize   string     `gorm:"size:20;not null"`
	OrderStatus string     `gorm:"size:20;not null"`
	UserID      int64      `gorm:"not null;index"`
	User        *userModel `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (orderModel) TableName() string { return "orders" }

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		IsStaff:      m.IsStaff,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func toOrderModel(o *domain.Order) orderModel {
	return orderModel{
		ID:          o.ID,
		Quantity:    o.Quantity,
		PizzaSize:   string(o.PizzaSize),
		OrderStatus: string(o.Status),
		UserID:      o.OwnerID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (m orderModel) toDomain() *domain.Order {
	return &domain.Order{
		ID:        m.ID,
		Quantity:  m.Quantity,
		PizzaSize: domain.PizzaSize(m.PizzaSize),
		Status:    domain.OrderStatus(m.OrderStatus),
		OwnerID:   m.UserID,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// isUniqueViolation covers drivers that do not translate their errors into
// gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
