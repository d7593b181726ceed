package views

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
)

// CheckoutRequest is the input to a checkout page load. Guest purchases
// carry contact details instead of a session.
type CheckoutRequest struct {
	DealID     string
	Guest      bool
	GuestEmail string
	GuestPhone string
}

// CheckoutData carries everything the payment widget needs. ClientSecret
// and the publishable key parameterize the widget; the client never touches
// card data.
type CheckoutData struct {
	Deal      *domain.Deal
	Pricing   *domain.DealPricing
	Intent    *domain.PaymentIntent
	ReturnURL string
}

// CheckoutController drives the checkout page: the deal, its pricing
// breakdown and a fresh payment intent. Intent creation mutates server
// state and is never retried.
type CheckoutController struct {
	deals    domain.DealRepository
	payments domain.PaymentRepository
	origin   string
	log      zerolog.Logger
	loader   *Loader[CheckoutRequest, CheckoutData]
}

// NewCheckoutController creates the checkout controller. origin is the
// public origin used to build the post-payment return URL.
func NewCheckoutController(deals domain.DealRepository, payments domain.PaymentRepository, origin string, log zerolog.Logger) *CheckoutController {
	c := &CheckoutController{
		deals:    deals,
		payments: payments,
		origin:   strings.TrimRight(origin, "/"),
		log:      log.With().Str("view", "checkout").Logger(),
	}
	c.loader = NewLoader(c.fetch, nil)
	return c
}

// Load validates the request, fetches the deal and pricing, and creates the
// payment intent. Validation failures surface before any network call.
func (c *CheckoutController) Load(ctx context.Context, req CheckoutRequest) Snapshot[CheckoutData] {
	if err := validateCheckout(req); err != nil {
		return Snapshot[CheckoutData]{State: StateError, Err: err}
	}
	return c.loader.Load(ctx, req)
}

// Reset clears the rendered state when the session ends; a payment intent
// created for one user must never be shown to the next.
func (c *CheckoutController) Reset() {
	c.loader.Reset()
}

// Detach permanently stops the loader. Called at shutdown.
func (c *CheckoutController) Detach() {
	c.loader.Detach()
}

func validateCheckout(req CheckoutRequest) error {
	if !req.Guest {
		return nil
	}
	email := strings.TrimSpace(req.GuestEmail)
	if email == "" {
		return &domain.ValidationError{Field: "guest_email", Message: "Email is required"}
	}
	if !strings.Contains(email, "@") {
		return &domain.ValidationError{Field: "guest_email", Message: "Enter a valid email address"}
	}
	return nil
}

// fetch loads deal and pricing concurrently, verifies the deal is
// purchasable, then creates the intent. The order matters: an inactive or
// out-of-window deal must never produce a payment intent.
func (c *CheckoutController) fetch(ctx context.Context, req CheckoutRequest) (CheckoutData, error) {
	data := CheckoutData{ReturnURL: c.origin + "/vouchers"}

	var wg sync.WaitGroup
	var dealErr, pricingErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		data.Deal, dealErr = c.deals.Get(ctx, req.DealID)
	}()
	go func() {
		defer wg.Done()
		data.Pricing, pricingErr = c.deals.Pricing(ctx, req.DealID)
	}()
	wg.Wait()

	if dealErr != nil {
		return CheckoutData{}, dealErr
	}
	if pricingErr != nil {
		return CheckoutData{}, pricingErr
	}

	now := time.Now()
	if !data.Deal.Active || data.Deal.Expired(now) || data.Deal.NotYetValid(now) {
		return CheckoutData{}, domain.ErrDealInactive
	}

	var intent *domain.PaymentIntent
	var err error
	if req.Guest {
		intent, err = c.payments.CreateGuestIntent(ctx, req.DealID, strings.TrimSpace(req.GuestEmail), strings.TrimSpace(req.GuestPhone))
	} else {
		intent, err = c.payments.CreateIntent(ctx, req.DealID)
	}
	if err != nil {
		return CheckoutData{}, err
	}
	data.Intent = intent

	c.log.Info().Str("deal_id", req.DealID).Bool("guest", req.Guest).
		Str("purchase_id", intent.PurchaseID).Msg("payment intent created")
	return data, nil
}
