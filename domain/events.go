package domain

// SessionEventType identifies a session store change.
type SessionEventType string

const (
	// SessionStarted fires after sign-in, sign-up or a restored session.
	SessionStarted SessionEventType = "session_started"
	// SessionEnded fires after sign-out or expiry teardown.
	SessionEnded SessionEventType = "session_ended"
	// SessionUserUpdated fires when the user profile is re-fetched.
	SessionUserUpdated SessionEventType = "user_updated"
)

// SessionEvent is delivered synchronously to store subscribers. Session and
// User are snapshots taken under the store lock, so a redirect decision made
// on an event is never stale.
type SessionEvent struct {
	Type    SessionEventType
	Session *Session
	User    *User
}
