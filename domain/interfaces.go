package domain

import "context"

// EventRepository exposes event listing, search and per-event deal lookup.
type EventRepository interface {
	List(ctx context.Context, params EventSearch) ([]Event, error)
	Search(ctx context.Context, params EventSearch) ([]Event, error)
	Get(ctx context.Context, eventID string) (*Event, error)
	Deals(ctx context.Context, eventID string, maxDistanceMiles float64) ([]Deal, error)
}

// DealRepository exposes deal lookup and curated lists.
type DealRepository interface {
	Get(ctx context.Context, dealID string) (*Deal, error)
	Featured(ctx context.Context, limit int) ([]Deal, error)
	Popular(ctx context.Context, limit int) ([]Deal, error)
	Pricing(ctx context.Context, dealID string) (*DealPricing, error)
}

// PaymentRepository exposes payment-intent creation, purchase history and
// redemption PIN issuance. CreateIntent and CreateGuestIntent mutate server
// state and must never be retried automatically.
type PaymentRepository interface {
	CreateIntent(ctx context.Context, dealID string) (*PaymentIntent, error)
	CreateGuestIntent(ctx context.Context, dealID, guestEmail, guestPhone string) (*PaymentIntent, error)
	Purchases(ctx context.Context) ([]Purchase, error)
	RequestRedemptionPin(ctx context.Context, purchaseID string) (*RedemptionPin, error)
}

// UserRepository exposes the current user's backend profile.
type UserRepository interface {
	Current(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error)
	SubmitSmsOptIn(ctx context.Context, optIn SmsOptIn) error
}

// IdentityProvider abstracts the external auth service: session issuance,
// restoration, refresh and destruction.
type IdentityProvider interface {
	// RestoreSession returns the persisted session, refreshing it when
	// stale, or (nil, nil) when none exists.
	RestoreSession(ctx context.Context) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, params SignUpParams) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

// SessionStore is the process-wide reactive auth state. All mutations to the
// session go through these operations; views never write it directly.
type SessionStore interface {
	// Initialize restores any persisted session. It must complete before
	// guarded routes are served.
	Initialize(ctx context.Context) error
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, params SignUpParams) error
	// SignOut always clears local state, even when the remote revoke fails.
	SignOut(ctx context.Context) error
	// RefreshUser re-fetches the backend profile; a no-op without a session.
	RefreshUser(ctx context.Context) error
	Session() *Session
	CurrentUser() *User
	Initialized() bool
	// Subscribe registers a synchronous observer and returns its
	// unsubscribe function.
	Subscribe(fn func(SessionEvent)) func()
}

// TokenSource yields the current bearer token, or "" when unauthenticated.
// The backend client reads it fresh on every call.
type TokenSource interface {
	AccessToken() string
}

// Locator resolves a best-effort client location. Implementations must
// honor ctx cancellation so a slow provider degrades instead of blocking.
type Locator interface {
	Locate(ctx context.Context) (*Location, error)
}
