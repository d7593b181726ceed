package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vadesa1/stans-events-web/domain"
)

// AuthHandlers serves the sign-in and sign-up pages and their submissions.
type AuthHandlers struct {
	sessions domain.SessionStore
	chrome   Chrome
}

// NewAuthHandlers creates the auth handlers.
func NewAuthHandlers(sessions domain.SessionStore, chrome Chrome) *AuthHandlers {
	return &AuthHandlers{sessions: sessions, chrome: chrome}
}

// LoginRequest is the sign-in submission.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Redirect string `json:"redirect,omitempty"`
}

// SignupRequest is the account creation submission.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// LoginPage renders the sign-in page, echoing the post-sign-in destination.
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":          "login",
		"redirect":      safeRedirect(c.Query("redirect")),
		"app_store_url": h.chrome.AppStoreURL,
	})
}

// SignupPage renders the account creation page.
func (h *AuthHandlers) SignupPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":          "signup",
		"redirect":      safeRedirect(c.Query("redirect")),
		"app_store_url": h.chrome.AppStoreURL,
	})
}

// Login handles the sign-in submission. On success the response carries the
// destination the client should navigate to.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password); err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"redirect": safeRedirect(req.Redirect)},
	})
}

// Signup handles the account creation submission.
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := domain.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: strings.TrimSpace(req.FullName),
	}
	if err := h.sessions.SignUp(c.Request.Context(), params); err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": authErr.Message})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{"redirect": safeRedirect(req.Redirect)},
	})
}

// Logout tears down the session and sends the user home.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.sessions.SignOut(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"redirect": "/"}})
}

// safeRedirect keeps post-auth navigation on this site. Anything but a
// local path falls back to the home page.
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}
