// Package handlers renders the client navigation routes as JSON page
// envelopes. Every page carries its load state; data is only present when
// the state is populated.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/views"
)

// Chrome is the shared envelope content present on every page.
type Chrome struct {
	AppStoreURL string
	Sessions    domain.SessionStore
}

// renderPage writes the page envelope for a settled snapshot. Error states
// stay in-page like any other render state; only a missing resource changes
// the HTTP status.
func renderPage[T any](c *gin.Context, chrome Chrome, page string, snap views.Snapshot[T]) {
	body := gin.H{
		"page":          page,
		"state":         snap.State,
		"app_store_url": chrome.AppStoreURL,
	}
	if user := chrome.Sessions.CurrentUser(); user != nil {
		body["user"] = user
	}

	status := http.StatusOK
	switch snap.State {
	case views.StatePopulated:
		body["data"] = snap.Data
	case views.StateError:
		body["error"] = errorMessage(snap.Err)
		if domain.IsNotFound(snap.Err) {
			status = http.StatusNotFound
		}
	}
	c.JSON(status, body)
}

// errorMessage maps an error to its user-facing text.
func errorMessage(err error) string {
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	if err != nil {
		return "An error occurred"
	}
	return ""
}

// fieldError writes a field-level validation failure.
func fieldError(c *gin.Context, err *domain.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error": err.Message,
		"field": err.Field,
	})
}
