package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/views"
)

// AccountHandlers serves the signed-in pages: checkout, vouchers and
// profile, plus the guest checkout and SMS opt-in submissions.
type AccountHandlers struct {
	checkout *views.CheckoutController
	vouchers *views.VouchersController
	profile  *views.ProfileController
	smsOptIn *views.SmsOptInController
	chrome   Chrome
}

// NewAccountHandlers creates the account handlers.
func NewAccountHandlers(checkout *views.CheckoutController, vouchers *views.VouchersController, profile *views.ProfileController, smsOptIn *views.SmsOptInController, chrome Chrome) *AccountHandlers {
	return &AccountHandlers{
		checkout: checkout,
		vouchers: vouchers,
		profile:  profile,
		smsOptIn: smsOptIn,
		chrome:   chrome,
	}
}

// Checkout renders the checkout page for a deal, creating the payment
// intent the widget needs.
func (h *AccountHandlers) Checkout(c *gin.Context) {
	snap := h.checkout.Load(c.Request.Context(), views.CheckoutRequest{DealID: c.Param("id")})
	renderPage(c, h.chrome, "checkout", mapSnapshot(snap, presentCheckout))
}

// GuestCheckoutRequest is the guest purchase submission.
type GuestCheckoutRequest struct {
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone,omitempty"`
}

// GuestCheckout creates a payment intent for a purchase without an account.
func (h *AccountHandlers) GuestCheckout(c *gin.Context) {
	var req GuestCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := h.checkout.Load(c.Request.Context(), views.CheckoutRequest{
		DealID:     c.Param("id"),
		Guest:      true,
		GuestEmail: req.Email,
		GuestPhone: req.Phone,
	})
	if snap.State == views.StateError {
		var valErr *domain.ValidationError
		if errors.As(snap.Err, &valErr) {
			fieldError(c, valErr)
			return
		}
	}
	renderPage(c, h.chrome, "checkout", mapSnapshot(snap, presentCheckout))
}

// Vouchers renders the purchase history page.
func (h *AccountHandlers) Vouchers(c *gin.Context) {
	snap := h.vouchers.Load(c.Request.Context())
	renderPage(c, h.chrome, "vouchers", mapSnapshot(snap, presentVouchers))
}

// RequestPin issues a redemption PIN for an active voucher.
func (h *AccountHandlers) RequestPin(c *gin.Context) {
	pin, err := h.vouchers.RequestPin(c.Request.Context(), c.Param("id"))
	if err != nil {
		var valErr *domain.ValidationError
		switch {
		case errors.As(err, &valErr):
			fieldError(c, valErr)
		case domain.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"pin":                pin.Pin,
			"expires_in_seconds": int(pin.ExpiresIn.Seconds()),
		},
	})
}

// Profile renders the profile page.
func (h *AccountHandlers) Profile(c *gin.Context) {
	snap := h.profile.Load(c.Request.Context())
	renderPage(c, h.chrome, "profile", snap)
}

// ProfileUpdateRequest is the profile edit submission.
type ProfileUpdateRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

// UpdateProfile saves profile edits.
func (h *AccountHandlers) UpdateProfile(c *gin.Context) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profile.Update(c.Request.Context(), domain.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		var valErr *domain.ValidationError
		if errors.As(err, &valErr) {
			fieldError(c, valErr)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// SmsOptInRequest is the SMS consent submission.
type SmsOptInRequest struct {
	Phone         string `json:"phone" binding:"required"`
	ConsentGiven  bool   `json:"consent_given"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// SubmitSmsOptIn records SMS consent.
func (h *AccountHandlers) SubmitSmsOptIn(c *gin.Context) {
	var req SmsOptInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.smsOptIn.Submit(c.Request.Context(), domain.SmsOptIn{
		Phone:         req.Phone,
		ConsentGiven:  req.ConsentGiven,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		var valErr *domain.ValidationError
		if errors.As(err, &valErr) {
			fieldError(c, valErr)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"message":       "You're signed up for SMS updates.",
		"phone_display": views.FormatPhoneNumber(req.Phone),
	}})
}
