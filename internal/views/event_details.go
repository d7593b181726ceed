package views

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/flags"
)

// Deals are shown for merchants within walking or short driving distance of
// the venue.
const dealRadiusMiles = 10

// EventDetails is the render model of the event page.
type EventDetails struct {
	Event        *domain.Event
	Deals        []domain.Deal
	DealsEnabled bool
}

// EventDetailsController drives the event page: the event itself plus the
// nearby deals section, fetched together.
type EventDetailsController struct {
	events domain.EventRepository
	flags  *flags.Flags
	log    zerolog.Logger
	loader *Loader[string, EventDetails]
}

// NewEventDetailsController creates the event page controller.
func NewEventDetailsController(events domain.EventRepository, flagSet *flags.Flags, log zerolog.Logger) *EventDetailsController {
	c := &EventDetailsController{
		events: events,
		flags:  flagSet,
		log:    log.With().Str("view", "event_details").Logger(),
	}
	c.loader = NewLoader(c.fetch, nil)
	return c
}

// Load fetches the event page data for eventID.
func (c *EventDetailsController) Load(ctx context.Context, eventID string) Snapshot[EventDetails] {
	return c.loader.Load(ctx, eventID)
}

// Detach permanently stops the loader. Called at shutdown.
func (c *EventDetailsController) Detach() {
	c.loader.Detach()
}

// fetch runs the event and deals requests concurrently. With the deals flag
// off the deals request is never issued. The event error wins; a deals
// failure degrades to an event page without the deals section.
func (c *EventDetailsController) fetch(ctx context.Context, eventID string) (EventDetails, error) {
	details := EventDetails{DealsEnabled: c.flags.IsDealsEnabled()}

	var wg sync.WaitGroup
	var eventErr, dealsErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		details.Event, eventErr = c.events.Get(ctx, eventID)
	}()

	if details.DealsEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			details.Deals, dealsErr = c.events.Deals(ctx, eventID, dealRadiusMiles)
		}()
	}
	wg.Wait()

	if eventErr != nil {
		return EventDetails{}, eventErr
	}
	if dealsErr != nil {
		c.log.Warn().Err(dealsErr).Str("event_id", eventID).Msg("deals fetch failed")
		details.Deals = nil
	}
	return details, nil
}
