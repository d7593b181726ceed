package views

import "github.com/vadesa1/stans-events-web/domain"

// Resettable is a controller whose rendered state can be returned to idle.
type Resettable interface {
	Reset()
}

// Detachable is a controller that can be permanently stopped.
type Detachable interface {
	Detach()
}

// ResetOnSessionEnd resets the given controllers whenever the session ends,
// so account-scoped pages never show the previous user's data to the next
// sign-in. The returned function unsubscribes.
func ResetOnSessionEnd(store domain.SessionStore, controllers ...Resettable) func() {
	return store.Subscribe(func(ev domain.SessionEvent) {
		if ev.Type != domain.SessionEnded {
			return
		}
		for _, c := range controllers {
			c.Reset()
		}
	})
}

// DetachAll permanently stops the given controllers, discarding in-flight
// results. Called once at shutdown.
func DetachAll(controllers ...Detachable) {
	for _, c := range controllers {
		c.Detach()
	}
}
