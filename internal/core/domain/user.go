package domain

import "time"

// User models an account that can sign in and own orders.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserDefaults holds the role flags applied when signup leaves them unset.
type UserDefaults struct {
	IsStaff  bool
	IsActive bool
}

// DefaultUserFlags is the canonical default set: active, not staff.
var DefaultUserFlags = UserDefaults{IsStaff: false, IsActive: true}
