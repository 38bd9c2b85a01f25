package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pizzadelivery/pizza-api/internal/api/middleware"
	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

// ctxUser returns the caller resolved by the Principal middleware. A missing
// user means the middleware chain was not applied to the route.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrTokenMissing
	}
	return user, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer, got %q", domain.ErrValidation, raw)
	}
	return id, nil
}

// bindAndValidate decodes the request body and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrValidation)
	}
	return c.Validate(req)
}
