package app

import (
	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/config"
	"github.com/vadesa1/stans-events-web/internal/flags"
	"github.com/vadesa1/stans-events-web/internal/infrastructure/backend"
	"github.com/vadesa1/stans-events-web/internal/infrastructure/environment"
	"github.com/vadesa1/stans-events-web/internal/infrastructure/geo"
	"github.com/vadesa1/stans-events-web/internal/infrastructure/identity"
	"github.com/vadesa1/stans-events-web/internal/metrics"
	"github.com/vadesa1/stans-events-web/internal/services"
)

// Container holds all dependencies.
type Container struct {
	Config *config.Config
	Env    environment.Environment
	Logger zerolog.Logger
	Flags  *flags.Flags

	Metrics  *metrics.Metrics
	Identity domain.IdentityProvider
	Sessions *services.SessionService
	Locator  domain.Locator

	EventRepo   domain.EventRepository
	DealRepo    domain.DealRepository
	PaymentRepo domain.PaymentRepository
	UserRepo    domain.UserRepository
}

// NewContainer creates and initializes all dependencies. The API base URL
// and identity endpoint come from the environment resolved off the public
// origin; a configured backend URL override wins.
func NewContainer(cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Env:     environment.Resolve(cfg.Origin),
		Logger:  logger,
		Flags:   &flags.Flags{DealsEnabled: cfg.DealsEnabled},
		Metrics: metrics.New(),
	}

	if err := c.initIdentity(); err != nil {
		return nil, err
	}
	if err := c.initBackend(); err != nil {
		return nil, err
	}
	c.initLocator()
	return c, nil
}

func (c *Container) initIdentity() error {
	provider, err := identity.NewSupabaseClient(identity.Config{
		URL:     c.Env.IdentityURL,
		AnonKey: c.Env.IdentityKey,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	c.Identity = provider
	return nil
}

func (c *Container) initBackend() error {
	baseURL := c.Env.APIBaseURL
	if c.Config.BackendURLOverride != "" {
		baseURL = c.Config.BackendURLOverride
	}

	// The session service is both the auth state and the token source, so
	// it must exist before the client that reads from it. Its own user
	// repository arrives after the client is built.
	c.Sessions = services.NewSessionService(c.Identity, nil, c.Logger)

	client, err := backend.NewClient(backend.Config{
		BaseURL: baseURL,
		Tokens:  c.Sessions,
		Metrics: c.Metrics,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	c.EventRepo = backend.NewEventRepository(client)
	c.DealRepo = backend.NewDealRepository(client)
	c.PaymentRepo = backend.NewPaymentRepository(client)
	c.UserRepo = backend.NewUserRepository(client)
	c.Sessions.SetUserRepository(c.UserRepo)
	return nil
}

func (c *Container) initLocator() {
	c.Locator = geo.NewHTTPLocator(geo.Config{
		Endpoint: c.Config.GeoEndpoint,
		Timeout:  c.Config.GeoTimeout,
		Logger:   c.Logger,
	})
}
