package views

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/flags"
)

const relatedDealLimit = 4

// DealDetails is the render model of the deal page. Expired and NotYetValid
// are evaluated at render time against the deal's validity window.
type DealDetails struct {
	Deal        *domain.Deal
	Pricing     *domain.DealPricing
	Related     []domain.Deal
	Expired     bool
	NotYetValid bool
}

// DealDetailsController drives the deal page: the deal, its server-computed
// pricing and a short rail of popular deals.
type DealDetailsController struct {
	deals  domain.DealRepository
	flags  *flags.Flags
	log    zerolog.Logger
	loader *Loader[string, DealDetails]
}

// NewDealDetailsController creates the deal page controller.
func NewDealDetailsController(deals domain.DealRepository, flagSet *flags.Flags, log zerolog.Logger) *DealDetailsController {
	c := &DealDetailsController{
		deals: deals,
		flags: flagSet,
		log:   log.With().Str("view", "deal_details").Logger(),
	}
	c.loader = NewLoader(c.fetch, nil)
	return c
}

// Enabled reports whether deal routes are live. When off the page renders
// the permanent empty affordance and Load must not be called.
func (c *DealDetailsController) Enabled() bool {
	return c.flags.IsDealsEnabled()
}

// Load fetches the deal page data for dealID.
func (c *DealDetailsController) Load(ctx context.Context, dealID string) Snapshot[DealDetails] {
	return c.loader.Load(ctx, dealID)
}

// PurchaseTarget returns where the purchase button leads: checkout for a
// signed-in user, otherwise sign-in with a redirect back to this deal.
func (c *DealDetailsController) PurchaseTarget(dealID string, signedIn bool) string {
	if signedIn {
		return "/checkout/" + dealID
	}
	return "/login?redirect=" + url.QueryEscape("/deals/"+dealID)
}

// Detach permanently stops the loader. Called at shutdown.
func (c *DealDetailsController) Detach() {
	c.loader.Detach()
}

// fetch runs the deal and pricing requests concurrently. The deal error
// wins; pricing and related failures degrade to a page without them.
func (c *DealDetailsController) fetch(ctx context.Context, dealID string) (DealDetails, error) {
	var details DealDetails
	var wg sync.WaitGroup
	var dealErr, pricingErr, relatedErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		details.Deal, dealErr = c.deals.Get(ctx, dealID)
	}()
	go func() {
		defer wg.Done()
		details.Pricing, pricingErr = c.deals.Pricing(ctx, dealID)
	}()
	go func() {
		defer wg.Done()
		details.Related, relatedErr = c.deals.Popular(ctx, relatedDealLimit)
	}()
	wg.Wait()

	if dealErr != nil {
		return DealDetails{}, dealErr
	}
	if pricingErr != nil {
		c.log.Warn().Err(pricingErr).Str("deal_id", dealID).Msg("pricing fetch failed")
		details.Pricing = nil
	}
	if relatedErr != nil {
		details.Related = nil
	}

	now := time.Now()
	details.Expired = details.Deal.Expired(now)
	details.NotYetValid = details.Deal.NotYetValid(now)
	return details, nil
}
