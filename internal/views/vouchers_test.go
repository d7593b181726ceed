package views

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/mocks"
)

func purchaseFixtures() []domain.Purchase {
	return []domain.Purchase{
		{ID: "p1", Status: domain.PurchaseCompleted, VoucherCode: "V1"},
		{ID: "p2", Status: domain.PurchaseCompleted, VoucherCode: "V2", RedemptionDate: "2025-08-01T12:00:00Z"},
		{ID: "p3", Status: domain.PurchasePending, VoucherCode: "V3"},
		{ID: "p4", Status: domain.PurchaseFailed, VoucherCode: "V4"},
	}
}

func vouchersController(purchases []domain.Purchase) (*VouchersController, *mocks.MockPaymentRepository) {
	payments := &mocks.MockPaymentRepository{
		PurchasesFn: func(ctx context.Context) ([]domain.Purchase, error) {
			return purchases, nil
		},
	}
	return NewVouchersController(payments, zerolog.Nop()), payments
}

func TestVouchersPartitioning(t *testing.T) {
	c, _ := vouchersController(purchaseFixtures())

	snap := c.Load(context.Background())
	require.Equal(t, StatePopulated, snap.State)

	require.Len(t, snap.Data.Active, 1)
	assert.Equal(t, "p1", snap.Data.Active[0].ID)
	require.Len(t, snap.Data.Redeemed, 1)
	assert.Equal(t, "p2", snap.Data.Redeemed[0].ID)
}

func TestVouchersEmptyWithOnlyPendingPurchases(t *testing.T) {
	c, _ := vouchersController([]domain.Purchase{
		{ID: "p3", Status: domain.PurchasePending},
	})

	snap := c.Load(context.Background())
	assert.Equal(t, StateEmpty, snap.State, "pending purchases appear in neither list")
}

func TestRequestPinForActiveVoucher(t *testing.T) {
	c, payments := vouchersController(purchaseFixtures())
	payments.RequestRedemptionPinFn = func(ctx context.Context, purchaseID string) (*domain.RedemptionPin, error) {
		assert.Equal(t, "p1", purchaseID)
		return &domain.RedemptionPin{Pin: "4821", ExpiresIn: 15 * time.Minute}, nil
	}

	pin, err := c.RequestPin(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "4821", pin.Pin)
	assert.Equal(t, 15*time.Minute, pin.ExpiresIn)
}

func TestRequestPinRejectedForRedeemedVoucher(t *testing.T) {
	c, payments := vouchersController(purchaseFixtures())
	payments.RequestRedemptionPinFn = func(ctx context.Context, purchaseID string) (*domain.RedemptionPin, error) {
		t.Error("a redeemed voucher must never reach the backend for a pin")
		return nil, nil
	}

	_, err := c.RequestPin(context.Background(), "p2")
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestRequestPinRejectedForPendingVoucher(t *testing.T) {
	c, _ := vouchersController(purchaseFixtures())

	_, err := c.RequestPin(context.Background(), "p3")
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestRequestPinUnknownPurchase(t *testing.T) {
	c, _ := vouchersController(purchaseFixtures())

	_, err := c.RequestPin(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
