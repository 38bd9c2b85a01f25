package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pizzadelivery/pizza-api/internal/api"
	"github.com/pizzadelivery/pizza-api/internal/core/service"
	"github.com/pizzadelivery/pizza-api/internal/infrastructure/http/handlers"
	"github.com/pizzadelivery/pizza-api/pkg/logger"
)

var serveMigrate bool

// pizza-api serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "create or update the schema before serving")
}

func serve(ctx context.Context) error {
	a, err := boot(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(context.Background()); err != nil {
			a.log.Error().Err(err).Msg("failed to close stores")
		}
	}()

	if serveMigrate {
		if err := a.store.Migrate(ctx); err != nil {
			return err
		}
	}

	auth, err := a.authService(a.cfg.Signup.AllowRoleFlags)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Log:               logger.Component(logger.ComponentHTTP),
		Auth:              auth,
		Orders:            service.NewOrderService(a.store.Orders, logger.Component(logger.ComponentOrders)),
		Tokens:            a.tokens,
		Users:             a.store.Users,
		EnforceActive:     a.cfg.Auth.EnforceActive,
		AuthRatePerMinute: a.cfg.RateLimit.AuthPerMinute,
		Checks: map[string]handlers.Check{
			a.store.Driver: a.store.Ping,
			"redis":        a.revocations.Ping,
		},
	})

	addr := net.JoinHostPort("", a.cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Str("store", a.store.Driver).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Dur("timeout", a.cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
