package views

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/flags"
	"github.com/vadesa1/stans-events-web/internal/mocks"
)

func TestEventDetailsFetchesEventAndDeals(t *testing.T) {
	events := &mocks.MockEventRepository{
		GetFn: func(ctx context.Context, eventID string) (*domain.Event, error) {
			return &domain.Event{ID: eventID, Name: "Jazz Night"}, nil
		},
		DealsFn: func(ctx context.Context, eventID string, maxDistanceMiles float64) ([]domain.Deal, error) {
			assert.Equal(t, float64(dealRadiusMiles), maxDistanceMiles)
			return []domain.Deal{{ID: "d1"}}, nil
		},
	}
	c := NewEventDetailsController(events, &flags.Flags{DealsEnabled: true}, zerolog.Nop())

	snap := c.Load(context.Background(), "ev1")
	require.Equal(t, StatePopulated, snap.State)
	assert.Equal(t, "Jazz Night", snap.Data.Event.Name)
	require.Len(t, snap.Data.Deals, 1)
	assert.True(t, snap.Data.DealsEnabled)
}

func TestEventDetailsSkipsDealsWhenFlagOff(t *testing.T) {
	events := &mocks.MockEventRepository{
		GetFn: func(ctx context.Context, eventID string) (*domain.Event, error) {
			return &domain.Event{ID: eventID}, nil
		},
		DealsFn: func(ctx context.Context, eventID string, maxDistanceMiles float64) ([]domain.Deal, error) {
			t.Error("no deals request may be issued with the flag off")
			return nil, nil
		},
	}
	c := NewEventDetailsController(events, &flags.Flags{DealsEnabled: false}, zerolog.Nop())

	snap := c.Load(context.Background(), "ev1")
	require.Equal(t, StatePopulated, snap.State)
	assert.False(t, snap.Data.DealsEnabled)
	assert.Empty(t, snap.Data.Deals)
}

func TestEventDetailsConcurrentRequestsGetOwnEvent(t *testing.T) {
	// The controller is a process-lifetime singleton, so two concurrent
	// requests for different events share it. Each must be answered with
	// the event it asked for, even when a faster request settles first.
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	events := &mocks.MockEventRepository{
		GetFn: func(ctx context.Context, eventID string) (*domain.Event, error) {
			if eventID == "slow" {
				close(slowStarted)
				<-releaseSlow
			}
			return &domain.Event{ID: eventID}, nil
		},
	}
	c := NewEventDetailsController(events, &flags.Flags{}, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	var slowSnap Snapshot[EventDetails]
	go func() {
		defer wg.Done()
		slowSnap = c.Load(context.Background(), "slow")
	}()

	<-slowStarted
	fastSnap := c.Load(context.Background(), "fast")
	require.Equal(t, StatePopulated, fastSnap.State)
	require.Equal(t, "fast", fastSnap.Data.Event.ID)

	close(releaseSlow)
	wg.Wait()

	require.Equal(t, StatePopulated, slowSnap.State)
	assert.Equal(t, "slow", slowSnap.Data.Event.ID,
		"a request for one event must never be served another event's data")
}

func TestEventDetailsEventErrorWins(t *testing.T) {
	events := &mocks.MockEventRepository{
		GetFn: func(ctx context.Context, eventID string) (*domain.Event, error) {
			return nil, &domain.RequestError{Message: "Event not found", StatusCode: 404}
		},
		DealsFn: func(ctx context.Context, eventID string, maxDistanceMiles float64) ([]domain.Deal, error) {
			return []domain.Deal{{ID: "d1"}}, nil
		},
	}
	c := NewEventDetailsController(events, &flags.Flags{DealsEnabled: true}, zerolog.Nop())

	snap := c.Load(context.Background(), "missing")
	assert.Equal(t, StateError, snap.State)
	assert.True(t, domain.IsNotFound(snap.Err))
}

func TestEventDetailsDealsFailureDegrades(t *testing.T) {
	events := &mocks.MockEventRepository{
		GetFn: func(ctx context.Context, eventID string) (*domain.Event, error) {
			return &domain.Event{ID: eventID}, nil
		},
		DealsFn: func(ctx context.Context, eventID string, maxDistanceMiles float64) ([]domain.Deal, error) {
			return nil, &domain.RequestError{Message: "An error occurred"}
		},
	}
	c := NewEventDetailsController(events, &flags.Flags{DealsEnabled: true}, zerolog.Nop())

	snap := c.Load(context.Background(), "ev1")
	require.Equal(t, StatePopulated, snap.State, "a deals failure must not take down the event page")
	assert.Empty(t, snap.Data.Deals)
}
