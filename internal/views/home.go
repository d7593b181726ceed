package views

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/flags"
)

const (
	homePageSize      = 20
	featuredDealLimit = 6
	locationWait      = 2 * time.Second
)

// HomeQuery is the user input driving the home page event list.
type HomeQuery struct {
	Query    string
	Category string
}

// HomeController drives the landing page: the event list filtered by the
// search input, plus a featured deals rail when the deals flag is on.
type HomeController struct {
	events  domain.EventRepository
	deals   domain.DealRepository
	locator domain.Locator
	flags   *flags.Flags
	log     zerolog.Logger

	eventsLoader *Loader[HomeQuery, []domain.Event]
	dealsLoader  *Loader[struct{}, []domain.Deal]
	geoWait      time.Duration

	locOnce  sync.Once
	location *domain.Location
}

// NewHomeController creates the home page controller.
func NewHomeController(events domain.EventRepository, deals domain.DealRepository, locator domain.Locator, flagSet *flags.Flags, log zerolog.Logger) *HomeController {
	c := &HomeController{
		events:  events,
		deals:   deals,
		locator: locator,
		flags:   flagSet,
		log:     log.With().Str("view", "home").Logger(),
		geoWait: locationWait,
	}
	c.eventsLoader = NewLoader(c.fetchEvents, func(events []domain.Event) bool { return len(events) == 0 })
	c.dealsLoader = NewLoader(c.fetchFeaturedDeals, func(deals []domain.Deal) bool { return len(deals) == 0 })
	return c
}

// Events loads the event list for the given input. Each distinct input
// re-enters loading; a newer input supersedes this one.
func (c *HomeController) Events(ctx context.Context, query HomeQuery) Snapshot[[]domain.Event] {
	return c.eventsLoader.Load(ctx, query)
}

// FeaturedDeals loads the featured deals rail. With the deals flag off no
// request is issued and the section is a permanent empty state.
func (c *HomeController) FeaturedDeals(ctx context.Context) Snapshot[[]domain.Deal] {
	if !c.flags.IsDealsEnabled() {
		return Snapshot[[]domain.Deal]{State: StateEmpty}
	}
	return c.dealsLoader.Load(ctx, struct{}{})
}

// Detach permanently stops both loaders. Called at shutdown.
func (c *HomeController) Detach() {
	c.eventsLoader.Detach()
	c.dealsLoader.Detach()
}

func (c *HomeController) fetchEvents(ctx context.Context, query HomeQuery) ([]domain.Event, error) {
	params := domain.EventSearch{
		Query:    query.Query,
		Category: query.Category,
		Size:     homePageSize,
	}
	if loc := c.clientLocation(ctx); loc != nil {
		params.Latitude = &loc.Latitude
		params.Longitude = &loc.Longitude
	}

	// A blank search is the plain listing, not a search for "".
	if query.Query == "" && query.Category == "" {
		return c.events.List(ctx, params)
	}
	return c.events.Search(ctx, params)
}

func (c *HomeController) fetchFeaturedDeals(ctx context.Context, _ struct{}) ([]domain.Deal, error) {
	return c.deals.Featured(ctx, featuredDealLimit)
}

// clientLocation resolves the client position once per process, waiting a
// bounded interval. Any failure degrades to unfiltered results.
func (c *HomeController) clientLocation(ctx context.Context) *domain.Location {
	c.locOnce.Do(func() {
		waitCtx, cancel := context.WithTimeout(ctx, c.geoWait)
		defer cancel()

		loc, err := c.locator.Locate(waitCtx)
		if err != nil {
			c.log.Debug().Err(err).Msg("geolocation unavailable")
			return
		}
		c.location = loc
	})
	return c.location
}
