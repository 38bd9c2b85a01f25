package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pizzadelivery/pizza-api/internal/api/metrics"
	"github.com/pizzadelivery/pizza-api/internal/api/middleware"
	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Hello is the unauthenticated greeting of the auth group.
//
// @Summary      Auth greeting
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/ [get]
func (h *AuthHandler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Hello World"})
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsStaff:  req.IsStaff,
		IsActive: req.IsActive,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, user)
}

func signupResult(err error) string {
	switch domain.KindOf(err) {
	case domain.KindConflict:
		return "conflict"
	case domain.KindValidation:
		return "invalid"
	default:
		return "error"
	}
}

// Login exchanges a username and password for an access and refresh token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.TokenPair
// @Failure      400   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrValidation)
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, pair)
}

// Refresh issues a new access token for the refresh token in the
// Authorization header.
//
// @Summary      Refresh access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accessTokenResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/refresh [get]
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw, err := middleware.BearerToken(c)
	if err != nil {
		middleware.RecordTokenRejection(domain.TokenRefresh, err)
		return err
	}

	access, err := h.authService.Refresh(c.Request().Context(), raw)
	if err != nil {
		if domain.IsTokenError(err) {
			middleware.RecordTokenRejection(domain.TokenRefresh, err)
		}
		return err
	}

	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: access})
}

// Logout revokes the refresh token in the Authorization header. With
// ?all=true every refresh token of the subject issued so far is revoked.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Param        all  query  bool  false  "Revoke every refresh token of the user"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	all := false
	if v := c.QueryParam("all"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: all must be a boolean", domain.ErrValidation)
		}
		all = parsed
	}

	raw, err := middleware.BearerToken(c)
	if err != nil {
		middleware.RecordTokenRejection(domain.TokenRefresh, err)
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), raw, all); err != nil {
		if domain.IsTokenError(err) {
			middleware.RecordTokenRejection(domain.TokenRefresh, err)
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
