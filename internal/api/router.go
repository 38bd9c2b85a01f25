package api

import (
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/pizzadelivery/pizza-api/docs"
	"github.com/pizzadelivery/pizza-api/internal/api/handler"
	"github.com/pizzadelivery/pizza-api/internal/api/metrics"
	"github.com/pizzadelivery/pizza-api/internal/api/middleware"
	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/http/handlers"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Log    zerolog.Logger
	Auth   ports.AuthService
	Orders ports.OrderService
	Tokens ports.TokenVerifier
	Users  middleware.UserFinder

	// EnforceActive rejects requests from inactive users.
	EnforceActive bool
	// AuthRatePerMinute limits /auth requests per client IP. Zero disables it.
	AuthRatePerMinute int
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(metrics.Middleware())

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := e.Group("/auth")
	if deps.AuthRatePerMinute > 0 {
		auth.Use(echo.WrapMiddleware(httprate.LimitByIP(deps.AuthRatePerMinute, time.Minute)))
	}
	auth.GET("/", authHandler.Hello)
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// --- Order routes (access token + resolved user) ---
	orderHandler := handler.NewOrderHandler(deps.Orders)
	order := e.Group("/order",
		middleware.Auth(deps.Tokens),
		middleware.Principal(deps.Users, deps.EnforceActive),
	)
	order.GET("/", orderHandler.Hello)
	order.POST("/create", orderHandler.Create, middleware.Authorize(domain.ActionCreateOrder))
	order.GET("/orders", orderHandler.List)
	order.GET("/orders/:id", orderHandler.Get, middleware.Authorize(domain.ActionReadAnyOrder))
	order.GET("/user/orders", orderHandler.ListOwn, middleware.Authorize(domain.ActionReadOwnOrders))
	order.GET("/user/orders/:id", orderHandler.GetOwn, middleware.Authorize(domain.ActionReadOwnOrders))
	order.PUT("/order/update/:id", orderHandler.UpdateFields, middleware.Authorize(domain.ActionUpdateOrder))
	order.PATCH("/order/update/:id", orderHandler.UpdateStatus, middleware.Authorize(domain.ActionUpdateOrderStatus))
	order.DELETE("/order/delete/:id", orderHandler.Delete, middleware.Authorize(domain.ActionDeleteOrder))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
