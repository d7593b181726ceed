// Package middleware holds the gin middleware for the web surface.
package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/vadesa1/stans-events-web/domain"
)

// Guard protects routes that require a signed-in user. It consults the
// session store on every request, so signing out revokes access
// immediately.
type Guard struct {
	sessions domain.SessionStore
}

// NewGuard creates the access guard.
func NewGuard(sessions domain.SessionStore) *Guard {
	return &Guard{sessions: sessions}
}

// RequireSession redirects unauthenticated requests to the sign-in page,
// carrying the original path so a successful sign-in can return the user.
func (g *Guard) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.sessions.Initialized() {
			// The store restores persisted state before the router serves;
			// reaching here unready means startup is still in flight.
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "starting up"})
			return
		}

		session := g.sessions.Session()
		if session == nil || session.Expired() {
			target := "/login?redirect=" + url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}
