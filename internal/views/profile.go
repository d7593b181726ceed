package views

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
)

// ProfileController drives the profile page: viewing and editing the
// current user's details.
type ProfileController struct {
	users    domain.UserRepository
	sessions domain.SessionStore
	log      zerolog.Logger
	loader   *Loader[struct{}, *domain.User]
}

// NewProfileController creates the profile controller.
func NewProfileController(users domain.UserRepository, sessions domain.SessionStore, log zerolog.Logger) *ProfileController {
	c := &ProfileController{
		users:    users,
		sessions: sessions,
		log:      log.With().Str("view", "profile").Logger(),
	}
	c.loader = NewLoader(c.fetch, nil)
	return c
}

// Load fetches the current profile.
func (c *ProfileController) Load(ctx context.Context) Snapshot[*domain.User] {
	return c.loader.Load(ctx, struct{}{})
}

// Reset clears the rendered profile when the session ends.
func (c *ProfileController) Reset() {
	c.loader.Reset()
}

// Detach permanently stops the loader. Called at shutdown.
func (c *ProfileController) Detach() {
	c.loader.Detach()
}

// Update validates and saves the profile edits, then refreshes the session
// store's copy so every view sees the new details. Validation failures
// surface as field-level errors before any network call.
func (c *ProfileController) Update(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	update.FullName = strings.TrimSpace(update.FullName)
	update.Phone = strings.TrimSpace(update.Phone)

	if update.FullName == "" {
		return nil, &domain.ValidationError{Field: "full_name", Message: "Full name is required"}
	}
	if update.Phone != "" && len(digitsOnly(update.Phone)) != 10 {
		return nil, &domain.ValidationError{Field: "phone", Message: "Enter a 10-digit phone number"}
	}

	user, err := c.users.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	if err := c.sessions.RefreshUser(ctx); err != nil {
		// The save succeeded; a stale store copy heals on the next refresh.
		c.log.Warn().Err(err).Msg("session user refresh failed after profile update")
	}
	return user, nil
}

func (c *ProfileController) fetch(ctx context.Context, _ struct{}) (*domain.User, error) {
	return c.users.Current(ctx)
}
