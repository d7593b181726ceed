package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vadesa1/stans-events-web/internal/views"
)

// PageHandlers serves the public pages: home, event details and deal
// details.
type PageHandlers struct {
	home   *views.HomeController
	event  *views.EventDetailsController
	deal   *views.DealDetailsController
	chrome Chrome
}

// NewPageHandlers creates the public page handlers.
func NewPageHandlers(home *views.HomeController, event *views.EventDetailsController, deal *views.DealDetailsController, chrome Chrome) *PageHandlers {
	return &PageHandlers{home: home, event: event, deal: deal, chrome: chrome}
}

// Home renders the landing page: the event list for the current search
// input plus the featured deals rail.
func (h *PageHandlers) Home(c *gin.Context) {
	ctx := c.Request.Context()
	query := views.HomeQuery{
		Query:    c.Query("query"),
		Category: c.Query("category"),
	}

	events := h.home.Events(ctx, query)
	deals := h.home.FeaturedDeals(ctx)

	body := gin.H{
		"page":          "home",
		"state":         events.State,
		"query":         query.Query,
		"category":      query.Category,
		"app_store_url": h.chrome.AppStoreURL,
		"featured_deals": gin.H{
			"state": deals.State,
			"data":  presentDeals(deals.Data),
		},
	}
	if user := h.chrome.Sessions.CurrentUser(); user != nil {
		body["user"] = user
	}
	switch events.State {
	case views.StatePopulated:
		body["data"] = presentEvents(events.Data)
	case views.StateError:
		body["error"] = errorMessage(events.Err)
	}
	c.JSON(http.StatusOK, body)
}

// Event renders the event details page.
func (h *PageHandlers) Event(c *gin.Context) {
	snap := h.event.Load(c.Request.Context(), c.Param("id"))
	renderPage(c, h.chrome, "event_details", mapSnapshot(snap, presentEventDetails))
}

// Deal renders the deal details page. With the deals flag off the page is a
// permanent empty affordance and no fetch is issued.
func (h *PageHandlers) Deal(c *gin.Context) {
	if !h.deal.Enabled() {
		renderPage(c, h.chrome, "deal_details", views.Snapshot[DealDetailsView]{State: views.StateEmpty})
		return
	}

	snap := h.deal.Load(c.Request.Context(), c.Param("id"))
	if snap.State == views.StatePopulated {
		signedIn := h.chrome.Sessions.Session() != nil
		body := gin.H{
			"page":            "deal_details",
			"state":           snap.State,
			"data":            presentDealDetails(snap.Data),
			"purchase_target": h.deal.PurchaseTarget(c.Param("id"), signedIn),
			"app_store_url":   h.chrome.AppStoreURL,
		}
		if user := h.chrome.Sessions.CurrentUser(); user != nil {
			body["user"] = user
		}
		c.JSON(http.StatusOK, body)
		return
	}
	renderPage(c, h.chrome, "deal_details", mapSnapshot(snap, presentDealDetails))
}

// Static renders an informational page by name.
func (h *PageHandlers) Static(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"page":          page,
			"app_store_url": h.chrome.AppStoreURL,
		})
	}
}

// SmsOptIn renders the SMS consent page. A phone query parameter is echoed
// back formatted as the form will display it.
func (h *PageHandlers) SmsOptIn(c *gin.Context) {
	body := gin.H{
		"page":          "sms_opt_in",
		"app_store_url": h.chrome.AppStoreURL,
	}
	if phone := c.Query("phone"); phone != "" {
		body["phone_display"] = views.FormatPhoneNumber(phone)
	}
	if user := h.chrome.Sessions.CurrentUser(); user != nil {
		body["user"] = user
	}
	c.JSON(http.StatusOK, body)
}
