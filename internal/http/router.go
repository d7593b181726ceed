// Package httpx builds the gin router for the web surface.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vadesa1/stans-events-web/internal/http/handlers"
	"github.com/vadesa1/stans-events-web/internal/http/middleware"
)

// BuildRouter wires the navigation routes. Guarded routes sit behind the
// session guard; everything else is public.
func BuildRouter(ph *handlers.PageHandlers, ah *handlers.AuthHandlers, ach *handlers.AccountHandlers, guard *middleware.Guard, metricsHandler http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(metricsHandler))

	r.GET("/", ph.Home)
	r.GET("/events/:id", ph.Event)
	r.GET("/deals/:id", ph.Deal)
	r.GET("/privacy", ph.Static("privacy"))
	r.GET("/terms", ph.Static("terms"))

	r.GET("/login", ah.LoginPage)
	r.POST("/login", ah.Login)
	r.GET("/signup", ah.SignupPage)
	r.POST("/signup", ah.Signup)
	r.POST("/logout", ah.Logout)

	r.GET("/sms-opt-in", ph.SmsOptIn)
	r.POST("/sms-opt-in", ach.SubmitSmsOptIn)

	// Guest checkout carries contact details instead of a session.
	r.POST("/checkout/:id/guest", ach.GuestCheckout)

	guarded := r.Group("/").Use(guard.RequireSession())
	guarded.GET("/checkout/:id", ach.Checkout)
	guarded.GET("/vouchers", ach.Vouchers)
	guarded.POST("/vouchers/:id/pin", ach.RequestPin)
	guarded.GET("/profile", ach.Profile)
	guarded.PUT("/profile", ach.UpdateProfile)

	return r
}
