package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
)

// Authorize enforces the access policy for action on the user loaded by
// Principal. Denials return domain.ErrStaffOnly.
func Authorize(action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextKeyUser).(*domain.User)
			if err := domain.Authorize(user, action); err != nil {
				return err
			}
			return next(c)
		}
	}
}
