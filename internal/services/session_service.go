// Package services holds the application services behind the domain
// interfaces. They coordinate infrastructure clients and own the mutable
// process state; handlers and views only see the interfaces.
package services

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
)

// SessionService is the process-wide auth state. It holds at most one
// session and one user profile, replaces both wholesale on every change and
// notifies subscribers synchronously. It also implements domain.TokenSource
// so the backend client reads the bearer token fresh on every request.
type SessionService struct {
	identity domain.IdentityProvider
	users    domain.UserRepository
	log      zerolog.Logger

	mu          sync.RWMutex
	session     *domain.Session
	user        *domain.User
	initialized bool

	subMu   sync.Mutex
	subs    map[int]func(domain.SessionEvent)
	nextSub int
}

// NewSessionService creates the session store.
func NewSessionService(identity domain.IdentityProvider, users domain.UserRepository, log zerolog.Logger) *SessionService {
	return &SessionService{
		identity: identity,
		users:    users,
		log:      log.With().Str("component", "session").Logger(),
		subs:     make(map[int]func(domain.SessionEvent)),
	}
}

// SetUserRepository injects the profile repository after construction. The
// backend client reads its bearer token from this store, so the store must
// exist first; call this during wiring, before Initialize.
func (s *SessionService) SetUserRepository(users domain.UserRepository) {
	s.users = users
}

// Initialize implements domain.SessionStore. It restores any persisted
// session before the first guarded request is served. A missing or rejected
// persisted session leaves the store signed out without error; only
// infrastructure failures surface.
func (s *SessionService) Initialize(ctx context.Context) error {
	session, err := s.identity.RestoreSession(ctx)
	if err != nil {
		return err
	}

	if session == nil {
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
		return nil
	}

	s.install(ctx, session)
	s.log.Info().Str("user_id", session.UserID).Msg("session restored")
	return nil
}

// SignIn implements domain.SessionStore.
func (s *SessionService) SignIn(ctx context.Context, email, password string) error {
	session, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	s.install(ctx, session)
	return nil
}

// SignUp implements domain.SessionStore.
func (s *SessionService) SignUp(ctx context.Context, params domain.SignUpParams) error {
	session, err := s.identity.SignUp(ctx, params)
	if err != nil {
		return err
	}
	s.install(ctx, session)
	return nil
}

// SignOut implements domain.SessionStore. Local state is torn down first so
// the user is signed out even when the remote revoke fails.
func (s *SessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.session = nil
	s.user = nil
	s.mu.Unlock()

	if session == nil {
		return nil
	}

	s.notify(domain.SessionEvent{Type: domain.SessionEnded})

	if err := s.identity.SignOut(ctx, session.AccessToken); err != nil {
		s.log.Warn().Err(err).Msg("remote sign-out failed")
	}
	return nil
}

// RefreshUser implements domain.SessionStore. Without a session it is a
// no-op.
func (s *SessionService) RefreshUser(ctx context.Context) error {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()
	if session == nil {
		return nil
	}

	user, err := s.users.Current(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	// Sign-out may have raced the fetch; a stale profile must not resurrect
	// the session.
	if s.session == nil {
		s.mu.Unlock()
		return nil
	}
	s.user = user
	session = s.session
	s.mu.Unlock()

	s.notify(domain.SessionEvent{Type: domain.SessionUserUpdated, Session: session, User: user})
	return nil
}

// Session implements domain.SessionStore.
func (s *SessionService) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	snapshot := *s.session
	return &snapshot
}

// CurrentUser implements domain.SessionStore.
func (s *SessionService) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	snapshot := *s.user
	return &snapshot
}

// Initialized implements domain.SessionStore.
func (s *SessionService) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Subscribe implements domain.SessionStore. Events are delivered
// synchronously in mutation order; the returned function removes the
// observer.
func (s *SessionService) Subscribe(fn func(domain.SessionEvent)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// AccessToken implements domain.TokenSource.
func (s *SessionService) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

// install publishes a fresh session, then fetches the profile. The session
// goes in first so AccessToken serves the new token to the profile fetch. A
// failed fetch keeps the session; the profile fills in on the next
// RefreshUser.
func (s *SessionService) install(ctx context.Context, session *domain.Session) {
	s.mu.Lock()
	s.session = session
	s.user = nil
	s.initialized = true
	s.mu.Unlock()

	user, err := s.users.Current(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("profile fetch failed after session start")
	} else {
		s.mu.Lock()
		if s.session == session {
			s.user = user
		}
		s.mu.Unlock()
	}

	s.notify(domain.SessionEvent{Type: domain.SessionStarted, Session: session, User: user})
}

// notify delivers an event to every subscriber in registration order. The
// subscriber list is snapshotted first so a callback may read the store or
// unsubscribe without deadlocking.
func (s *SessionService) notify(event domain.SessionEvent) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(domain.SessionEvent), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}
