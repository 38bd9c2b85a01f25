package handler

import "github.com/pizzadelivery/pizza-api/internal/core/domain"

type signupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email,max=80"`
	Password string `json:"password" validate:"required,max=72"`
	IsStaff  *bool  `json:"is_staff,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// loginRequest is not run through the validator: empty credentials get the
// same answer as wrong ones.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind  domain.Kind `json:"kind"`
	Error string      `json:"error"`
}
