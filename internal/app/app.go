package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vadesa1/stans-events-web/internal/config"
	httpx "github.com/vadesa1/stans-events-web/internal/http"
	"github.com/vadesa1/stans-events-web/internal/http/handlers"
	"github.com/vadesa1/stans-events-web/internal/http/middleware"
	"github.com/vadesa1/stans-events-web/internal/views"
)

const shutdownTimeout = 10 * time.Second

// Run wires the application and serves until the listener fails or the
// process receives an interrupt. The session store restores persisted state
// before the router accepts its first request, so guarded routes never
// observe a half-initialized store.
func Run(cfg *config.Config, c *Container) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := c.Sessions.Initialize(initCtx); err != nil {
		return err
	}

	log := c.Logger
	chrome := handlers.Chrome{AppStoreURL: cfg.AppStoreURL, Sessions: c.Sessions}

	home := views.NewHomeController(c.EventRepo, c.DealRepo, c.Locator, c.Flags, log)
	event := views.NewEventDetailsController(c.EventRepo, c.Flags, log)
	deal := views.NewDealDetailsController(c.DealRepo, c.Flags, log)
	checkout := views.NewCheckoutController(c.DealRepo, c.PaymentRepo, cfg.Origin, log)
	vouchers := views.NewVouchersController(c.PaymentRepo, log)
	profile := views.NewProfileController(c.UserRepo, c.Sessions, log)
	smsOptIn := views.NewSmsOptInController(c.UserRepo, log)

	// Account-scoped pages must not survive a sign-out.
	unsubscribe := views.ResetOnSessionEnd(c.Sessions, checkout, vouchers, profile)
	defer unsubscribe()

	router := httpx.BuildRouter(
		handlers.NewPageHandlers(home, event, deal, chrome),
		handlers.NewAuthHandlers(c.Sessions, chrome),
		handlers.NewAccountHandlers(checkout, vouchers, profile, smsOptIn, chrome),
		middleware.NewGuard(c.Sessions),
		c.Metrics.Handler(),
	)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()

	log.Info().
		Str("addr", srv.Addr).
		Str("environment", string(c.Env.Name)).
		Bool("deals_enabled", c.Flags.IsDealsEnabled()).
		Msg("listening")

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	views.DetachAll(home, event, deal, checkout, vouchers, profile)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
