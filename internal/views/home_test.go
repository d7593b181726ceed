package views

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/flags"
	"github.com/vadesa1/stans-events-web/internal/mocks"
)

func TestHomeBlankInputUsesListing(t *testing.T) {
	var listed, searched bool
	events := &mocks.MockEventRepository{
		ListFn: func(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
			listed = true
			assert.Equal(t, 20, params.Size)
			return []domain.Event{{ID: "ev1"}}, nil
		},
		SearchFn: func(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
			searched = true
			return nil, nil
		},
	}
	c := NewHomeController(events, &mocks.MockDealRepository{}, &mocks.MockLocator{}, &flags.Flags{}, zerolog.Nop())

	snap := c.Events(context.Background(), HomeQuery{})
	assert.Equal(t, StatePopulated, snap.State)
	assert.True(t, listed)
	assert.False(t, searched, "a blank search is the plain listing, not a search")
}

func TestHomeQueryUsesSearch(t *testing.T) {
	events := &mocks.MockEventRepository{
		SearchFn: func(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
			assert.Equal(t, "jazz", params.Query)
			assert.Equal(t, "music", params.Category)
			return []domain.Event{{ID: "ev1"}}, nil
		},
	}
	c := NewHomeController(events, &mocks.MockDealRepository{}, &mocks.MockLocator{}, &flags.Flags{}, zerolog.Nop())

	snap := c.Events(context.Background(), HomeQuery{Query: "jazz", Category: "music"})
	assert.Equal(t, StatePopulated, snap.State)
}

func TestHomeAttachesResolvedLocation(t *testing.T) {
	locator := &mocks.MockLocator{
		LocateFn: func(ctx context.Context) (*domain.Location, error) {
			return &domain.Location{Latitude: 40.7, Longitude: -74.0}, nil
		},
	}
	events := &mocks.MockEventRepository{
		ListFn: func(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
			require.NotNil(t, params.Latitude)
			assert.Equal(t, 40.7, *params.Latitude)
			require.NotNil(t, params.Longitude)
			assert.Equal(t, -74.0, *params.Longitude)
			assert.Nil(t, params.Radius, "radius is only sent when explicitly set")
			return []domain.Event{{ID: "ev1"}}, nil
		},
	}
	c := NewHomeController(events, &mocks.MockDealRepository{}, locator, &flags.Flags{}, zerolog.Nop())

	snap := c.Events(context.Background(), HomeQuery{})
	assert.Equal(t, StatePopulated, snap.State)
}

func TestHomeDegradesWhenLocationUnavailable(t *testing.T) {
	locator := &mocks.MockLocator{
		LocateFn: func(ctx context.Context) (*domain.Location, error) {
			return nil, context.DeadlineExceeded
		},
	}
	events := &mocks.MockEventRepository{
		ListFn: func(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
			assert.Nil(t, params.Latitude)
			assert.Nil(t, params.Longitude)
			return []domain.Event{{ID: "ev1"}}, nil
		},
	}
	c := NewHomeController(events, &mocks.MockDealRepository{}, locator, &flags.Flags{}, zerolog.Nop())

	snap := c.Events(context.Background(), HomeQuery{})
	assert.Equal(t, StatePopulated, snap.State)
}

func TestHomeEmptyResults(t *testing.T) {
	events := &mocks.MockEventRepository{
		SearchFn: func(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
			return []domain.Event{}, nil
		},
	}
	c := NewHomeController(events, &mocks.MockDealRepository{}, &mocks.MockLocator{}, &flags.Flags{}, zerolog.Nop())

	snap := c.Events(context.Background(), HomeQuery{Query: "no matches"})
	assert.Equal(t, StateEmpty, snap.State)
}

func TestHomeFeaturedDealsSkippedWhenFlagOff(t *testing.T) {
	deals := &mocks.MockDealRepository{
		FeaturedFn: func(ctx context.Context, limit int) ([]domain.Deal, error) {
			t.Error("no deals request may be issued with the flag off")
			return nil, nil
		},
	}
	c := NewHomeController(&mocks.MockEventRepository{}, deals, &mocks.MockLocator{}, &flags.Flags{DealsEnabled: false}, zerolog.Nop())

	snap := c.FeaturedDeals(context.Background())
	assert.Equal(t, StateEmpty, snap.State)
}

func TestHomeFeaturedDealsFetchedWhenFlagOn(t *testing.T) {
	deals := &mocks.MockDealRepository{
		FeaturedFn: func(ctx context.Context, limit int) ([]domain.Deal, error) {
			assert.Equal(t, featuredDealLimit, limit)
			return []domain.Deal{{ID: "d1"}}, nil
		},
	}
	c := NewHomeController(&mocks.MockEventRepository{}, deals, &mocks.MockLocator{}, &flags.Flags{DealsEnabled: true}, zerolog.Nop())

	snap := c.FeaturedDeals(context.Background())
	assert.Equal(t, StatePopulated, snap.State)
	require.Len(t, snap.Data, 1)
}
