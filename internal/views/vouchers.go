package views

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
)

// VouchersData partitions the user's purchases for display. Pending and
// failed purchases appear in neither list.
type VouchersData struct {
	Active   []domain.Purchase
	Redeemed []domain.Purchase
}

// VouchersController drives the purchase history page and redemption PIN
// issuance.
type VouchersController struct {
	payments domain.PaymentRepository
	log      zerolog.Logger
	loader   *Loader[struct{}, VouchersData]
}

// NewVouchersController creates the vouchers controller.
func NewVouchersController(payments domain.PaymentRepository, log zerolog.Logger) *VouchersController {
	c := &VouchersController{
		payments: payments,
		log:      log.With().Str("view", "vouchers").Logger(),
	}
	c.loader = NewLoader(c.fetch, func(d VouchersData) bool {
		return len(d.Active) == 0 && len(d.Redeemed) == 0
	})
	return c
}

// Load fetches and partitions the purchase history.
func (c *VouchersController) Load(ctx context.Context) Snapshot[VouchersData] {
	return c.loader.Load(ctx, struct{}{})
}

// Reset clears the rendered purchase history when the session ends.
func (c *VouchersController) Reset() {
	c.loader.Reset()
}

// Detach permanently stops the loader. Called at shutdown.
func (c *VouchersController) Detach() {
	c.loader.Detach()
}

// RequestPin issues a redemption PIN for purchaseID. Only an active
// voucher, completed and not yet redeemed, may request one; anything else
// is rejected without a backend call.
func (c *VouchersController) RequestPin(ctx context.Context, purchaseID string) (*domain.RedemptionPin, error) {
	purchases, err := c.payments.Purchases(ctx)
	if err != nil {
		return nil, err
	}

	var target *domain.Purchase
	for i := range purchases {
		if purchases[i].ID == purchaseID {
			target = &purchases[i]
			break
		}
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	if !target.Redeemable() {
		return nil, &domain.ValidationError{Field: "purchase", Message: "This voucher cannot be redeemed"}
	}

	pin, err := c.payments.RequestRedemptionPin(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	c.log.Info().Str("purchase_id", purchaseID).Msg("redemption pin issued")
	return pin, nil
}

func (c *VouchersController) fetch(ctx context.Context, _ struct{}) (VouchersData, error) {
	purchases, err := c.payments.Purchases(ctx)
	if err != nil {
		return VouchersData{}, err
	}

	var data VouchersData
	for _, p := range purchases {
		switch {
		case p.Redeemed():
			data.Redeemed = append(data.Redeemed, p)
		case p.Status == domain.PurchaseCompleted:
			data.Active = append(data.Active, p)
		}
	}
	return data, nil
}
