package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/mocks"
)

func freshSession(token string) *domain.Session {
	return &domain.Session{
		AccessToken:  token,
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
		UserID:       "user-1",
	}
}

func TestInitializeWithoutPersistedSession(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		RestoreSessionFn: func(ctx context.Context) (*domain.Session, error) { return nil, nil },
	}
	svc := NewSessionService(identity, &mocks.MockUserRepository{}, zerolog.Nop())

	require.NoError(t, svc.Initialize(context.Background()))
	assert.True(t, svc.Initialized())
	assert.Nil(t, svc.Session())
	assert.Empty(t, svc.AccessToken())
}

func TestInitializeRestoresSessionAndProfile(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		RestoreSessionFn: func(ctx context.Context) (*domain.Session, error) {
			return freshSession("tok-restored"), nil
		},
	}
	users := &mocks.MockUserRepository{
		CurrentFn: func(ctx context.Context) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: "jane@example.com"}, nil
		},
	}
	svc := NewSessionService(identity, users, zerolog.Nop())

	var events []domain.SessionEvent
	svc.Subscribe(func(e domain.SessionEvent) { events = append(events, e) })

	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, "tok-restored", svc.AccessToken())
	require.NotNil(t, svc.CurrentUser())
	assert.Equal(t, "jane@example.com", svc.CurrentUser().Email)

	require.Len(t, events, 1)
	assert.Equal(t, domain.SessionStarted, events[0].Type)
	require.NotNil(t, events[0].User)
	assert.Equal(t, "user-1", events[0].User.ID)
}

func TestSessionInstalledBeforeProfileFetch(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		SignInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return freshSession("tok-signin"), nil
		},
	}

	var svc *SessionService
	var tokenDuringFetch string
	users := &mocks.MockUserRepository{
		CurrentFn: func(ctx context.Context) (*domain.User, error) {
			tokenDuringFetch = svc.AccessToken()
			return &domain.User{ID: "user-1"}, nil
		},
	}
	svc = NewSessionService(identity, users, zerolog.Nop())

	require.NoError(t, svc.SignIn(context.Background(), "jane@example.com", "pw"))
	assert.Equal(t, "tok-signin", tokenDuringFetch,
		"the profile fetch must see the new token")
}

func TestSignInKeepsSessionWhenProfileFetchFails(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		SignInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return freshSession("tok"), nil
		},
	}
	users := &mocks.MockUserRepository{
		CurrentFn: func(ctx context.Context) (*domain.User, error) {
			return nil, errors.New("backend down")
		},
	}
	svc := NewSessionService(identity, users, zerolog.Nop())

	require.NoError(t, svc.SignIn(context.Background(), "jane@example.com", "pw"))
	assert.NotNil(t, svc.Session())
	assert.Nil(t, svc.CurrentUser())
}

func TestSignInFailureLeavesStoreUntouched(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		SignInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return nil, &domain.AuthError{Message: "Invalid login credentials"}
		},
	}
	svc := NewSessionService(identity, &mocks.MockUserRepository{}, zerolog.Nop())

	var notified bool
	svc.Subscribe(func(domain.SessionEvent) { notified = true })

	err := svc.SignIn(context.Background(), "jane@example.com", "wrong")
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Nil(t, svc.Session())
	assert.False(t, notified)
}

func TestSignOutClearsStateEvenWhenRemoteFails(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		SignInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return freshSession("tok"), nil
		},
		SignOutFn: func(ctx context.Context, accessToken string) error {
			return errors.New("revoke failed")
		},
	}
	users := &mocks.MockUserRepository{
		CurrentFn: func(ctx context.Context) (*domain.User, error) {
			return &domain.User{ID: "user-1"}, nil
		},
	}
	svc := NewSessionService(identity, users, zerolog.Nop())
	require.NoError(t, svc.SignIn(context.Background(), "jane@example.com", "pw"))

	var events []domain.SessionEvent
	svc.Subscribe(func(e domain.SessionEvent) { events = append(events, e) })

	require.NoError(t, svc.SignOut(context.Background()))
	assert.Nil(t, svc.Session())
	assert.Nil(t, svc.CurrentUser())
	assert.Empty(t, svc.AccessToken())

	require.Len(t, events, 1)
	assert.Equal(t, domain.SessionEnded, events[0].Type)
}

func TestSignOutWithoutSessionIsNoOp(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		SignOutFn: func(ctx context.Context, accessToken string) error {
			t.Error("no remote call expected")
			return nil
		},
	}
	svc := NewSessionService(identity, &mocks.MockUserRepository{}, zerolog.Nop())
	require.NoError(t, svc.SignOut(context.Background()))
}

func TestRefreshUserUpdatesProfile(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		SignInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return freshSession("tok"), nil
		},
	}
	name := "Jane"
	users := &mocks.MockUserRepository{
		CurrentFn: func(ctx context.Context) (*domain.User, error) {
			return &domain.User{ID: "user-1", FullName: name}, nil
		},
	}
	svc := NewSessionService(identity, users, zerolog.Nop())
	require.NoError(t, svc.SignIn(context.Background(), "jane@example.com", "pw"))

	var events []domain.SessionEvent
	svc.Subscribe(func(e domain.SessionEvent) { events = append(events, e) })

	name = "Jane Q. Public"
	require.NoError(t, svc.RefreshUser(context.Background()))
	assert.Equal(t, "Jane Q. Public", svc.CurrentUser().FullName)

	require.Len(t, events, 1)
	assert.Equal(t, domain.SessionUserUpdated, events[0].Type)
}

func TestRefreshUserWithoutSessionIsNoOp(t *testing.T) {
	users := &mocks.MockUserRepository{
		CurrentFn: func(ctx context.Context) (*domain.User, error) {
			t.Error("no fetch expected")
			return nil, nil
		},
	}
	svc := NewSessionService(&mocks.MockIdentityProvider{}, users, zerolog.Nop())
	require.NoError(t, svc.RefreshUser(context.Background()))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		SignInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return freshSession("tok"), nil
		},
	}
	users := &mocks.MockUserRepository{
		CurrentFn: func(ctx context.Context) (*domain.User, error) {
			return &domain.User{ID: "user-1"}, nil
		},
	}
	svc := NewSessionService(identity, users, zerolog.Nop())

	var calls int
	unsubscribe := svc.Subscribe(func(domain.SessionEvent) { calls++ })

	require.NoError(t, svc.SignIn(context.Background(), "jane@example.com", "pw"))
	assert.Equal(t, 1, calls)

	unsubscribe()
	require.NoError(t, svc.SignOut(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestSessionReturnsSnapshot(t *testing.T) {
	identity := &mocks.MockIdentityProvider{
		SignInFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			return freshSession("tok"), nil
		},
	}
	users := &mocks.MockUserRepository{
		CurrentFn: func(ctx context.Context) (*domain.User, error) {
			return &domain.User{ID: "user-1"}, nil
		},
	}
	svc := NewSessionService(identity, users, zerolog.Nop())
	require.NoError(t, svc.SignIn(context.Background(), "jane@example.com", "pw"))

	snapshot := svc.Session()
	snapshot.AccessToken = "tampered"
	assert.Equal(t, "tok", svc.AccessToken())
}
