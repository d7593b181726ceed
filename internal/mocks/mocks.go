// Package mocks provides hand-written function-field fakes for the domain
// interfaces. Tests assign only the functions they care about; unassigned
// calls fail loudly.
package mocks

import (
	"context"
	"fmt"

	"github.com/vadesa1/stans-events-web/domain"
)

// MockEventRepository implements domain.EventRepository.
type MockEventRepository struct {
	ListFn   func(ctx context.Context, params domain.EventSearch) ([]domain.Event, error)
	SearchFn func(ctx context.Context, params domain.EventSearch) ([]domain.Event, error)
	GetFn    func(ctx context.Context, eventID string) (*domain.Event, error)
	DealsFn  func(ctx context.Context, eventID string, maxDistanceMiles float64) ([]domain.Deal, error)
}

func (m *MockEventRepository) List(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
	if m.ListFn == nil {
		return nil, fmt.Errorf("mocks: ListFn not set")
	}
	return m.ListFn(ctx, params)
}

func (m *MockEventRepository) Search(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
	if m.SearchFn == nil {
		return nil, fmt.Errorf("mocks: SearchFn not set")
	}
	return m.SearchFn(ctx, params)
}

func (m *MockEventRepository) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	if m.GetFn == nil {
		return nil, fmt.Errorf("mocks: GetFn not set")
	}
	return m.GetFn(ctx, eventID)
}

func (m *MockEventRepository) Deals(ctx context.Context, eventID string, maxDistanceMiles float64) ([]domain.Deal, error) {
	if m.DealsFn == nil {
		return nil, fmt.Errorf("mocks: DealsFn not set")
	}
	return m.DealsFn(ctx, eventID, maxDistanceMiles)
}

// MockDealRepository implements domain.DealRepository.
type MockDealRepository struct {
	GetFn      func(ctx context.Context, dealID string) (*domain.Deal, error)
	FeaturedFn func(ctx context.Context, limit int) ([]domain.Deal, error)
	PopularFn  func(ctx context.Context, limit int) ([]domain.Deal, error)
	PricingFn  func(ctx context.Context, dealID string) (*domain.DealPricing, error)
}

func (m *MockDealRepository) Get(ctx context.Context, dealID string) (*domain.Deal, error) {
	if m.GetFn == nil {
		return nil, fmt.Errorf("mocks: GetFn not set")
	}
	return m.GetFn(ctx, dealID)
}

func (m *MockDealRepository) Featured(ctx context.Context, limit int) ([]domain.Deal, error) {
	if m.FeaturedFn == nil {
		return nil, fmt.Errorf("mocks: FeaturedFn not set")
	}
	return m.FeaturedFn(ctx, limit)
}

func (m *MockDealRepository) Popular(ctx context.Context, limit int) ([]domain.Deal, error) {
	if m.PopularFn == nil {
		return nil, fmt.Errorf("mocks: PopularFn not set")
	}
	return m.PopularFn(ctx, limit)
}

func (m *MockDealRepository) Pricing(ctx context.Context, dealID string) (*domain.DealPricing, error) {
	if m.PricingFn == nil {
		return nil, fmt.Errorf("mocks: PricingFn not set")
	}
	return m.PricingFn(ctx, dealID)
}

// MockPaymentRepository implements domain.PaymentRepository.
type MockPaymentRepository struct {
	CreateIntentFn         func(ctx context.Context, dealID string) (*domain.PaymentIntent, error)
	CreateGuestIntentFn    func(ctx context.Context, dealID, guestEmail, guestPhone string) (*domain.PaymentIntent, error)
	PurchasesFn            func(ctx context.Context) ([]domain.Purchase, error)
	RequestRedemptionPinFn func(ctx context.Context, purchaseID string) (*domain.RedemptionPin, error)
}

func (m *MockPaymentRepository) CreateIntent(ctx context.Context, dealID string) (*domain.PaymentIntent, error) {
	if m.CreateIntentFn == nil {
		return nil, fmt.Errorf("mocks: CreateIntentFn not set")
	}
	return m.CreateIntentFn(ctx, dealID)
}

func (m *MockPaymentRepository) CreateGuestIntent(ctx context.Context, dealID, guestEmail, guestPhone string) (*domain.PaymentIntent, error) {
	if m.CreateGuestIntentFn == nil {
		return nil, fmt.Errorf("mocks: CreateGuestIntentFn not set")
	}
	return m.CreateGuestIntentFn(ctx, dealID, guestEmail, guestPhone)
}

func (m *MockPaymentRepository) Purchases(ctx context.Context) ([]domain.Purchase, error) {
	if m.PurchasesFn == nil {
		return nil, fmt.Errorf("mocks: PurchasesFn not set")
	}
	return m.PurchasesFn(ctx)
}

func (m *MockPaymentRepository) RequestRedemptionPin(ctx context.Context, purchaseID string) (*domain.RedemptionPin, error) {
	if m.RequestRedemptionPinFn == nil {
		return nil, fmt.Errorf("mocks: RequestRedemptionPinFn not set")
	}
	return m.RequestRedemptionPinFn(ctx, purchaseID)
}

// MockUserRepository implements domain.UserRepository.
type MockUserRepository struct {
	CurrentFn        func(ctx context.Context) (*domain.User, error)
	UpdateProfileFn  func(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
	SubmitSmsOptInFn func(ctx context.Context, optIn domain.SmsOptIn) error
}

func (m *MockUserRepository) Current(ctx context.Context) (*domain.User, error) {
	if m.CurrentFn == nil {
		return nil, fmt.Errorf("mocks: CurrentFn not set")
	}
	return m.CurrentFn(ctx)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFn == nil {
		return nil, fmt.Errorf("mocks: UpdateProfileFn not set")
	}
	return m.UpdateProfileFn(ctx, update)
}

func (m *MockUserRepository) SubmitSmsOptIn(ctx context.Context, optIn domain.SmsOptIn) error {
	if m.SubmitSmsOptInFn == nil {
		return fmt.Errorf("mocks: SubmitSmsOptInFn not set")
	}
	return m.SubmitSmsOptInFn(ctx, optIn)
}

// MockIdentityProvider implements domain.IdentityProvider.
type MockIdentityProvider struct {
	RestoreSessionFn func(ctx context.Context) (*domain.Session, error)
	SignInFn         func(ctx context.Context, email, password string) (*domain.Session, error)
	SignUpFn         func(ctx context.Context, params domain.SignUpParams) (*domain.Session, error)
	SignOutFn        func(ctx context.Context, accessToken string) error
	RefreshFn        func(ctx context.Context, refreshToken string) (*domain.Session, error)
}

func (m *MockIdentityProvider) RestoreSession(ctx context.Context) (*domain.Session, error) {
	if m.RestoreSessionFn == nil {
		return nil, nil
	}
	return m.RestoreSessionFn(ctx)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.SignInFn == nil {
		return nil, fmt.Errorf("mocks: SignInFn not set")
	}
	return m.SignInFn(ctx, email, password)
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, params domain.SignUpParams) (*domain.Session, error) {
	if m.SignUpFn == nil {
		return nil, fmt.Errorf("mocks: SignUpFn not set")
	}
	return m.SignUpFn(ctx, params)
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	if m.SignOutFn == nil {
		return nil
	}
	return m.SignOutFn(ctx, accessToken)
}

func (m *MockIdentityProvider) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if m.RefreshFn == nil {
		return nil, fmt.Errorf("mocks: RefreshFn not set")
	}
	return m.RefreshFn(ctx, refreshToken)
}

// MockLocator implements domain.Locator.
type MockLocator struct {
	LocateFn func(ctx context.Context) (*domain.Location, error)
}

func (m *MockLocator) Locate(ctx context.Context) (*domain.Location, error) {
	if m.LocateFn == nil {
		return nil, nil
	}
	return m.LocateFn(ctx)
}
