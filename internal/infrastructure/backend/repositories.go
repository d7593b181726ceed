package backend

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vadesa1/stans-events-web/domain"
)

// EventRepositoryImpl implements domain.EventRepository over the REST API.
type EventRepositoryImpl struct {
	client *Client
}

// NewEventRepository creates an event repository.
func NewEventRepository(client *Client) domain.EventRepository {
	return &EventRepositoryImpl{client: client}
}

// List implements domain.EventRepository.
func (r *EventRepositoryImpl) List(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
	var wires []eventWire
	if err := r.client.get(ctx, "list_events", "/events/", searchQuery(params), &wires); err != nil {
		return nil, err
	}
	return normalizeEvents(wires), nil
}

// Search implements domain.EventRepository.
func (r *EventRepositoryImpl) Search(ctx context.Context, params domain.EventSearch) ([]domain.Event, error) {
	var wires []eventWire
	if err := r.client.get(ctx, "search_events", "/events/search", searchQuery(params), &wires); err != nil {
		return nil, err
	}
	return normalizeEvents(wires), nil
}

// Get implements domain.EventRepository.
func (r *EventRepositoryImpl) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	var wire eventWire
	if err := r.client.get(ctx, "get_event", "/events/"+url.PathEscape(eventID), nil, &wire); err != nil {
		return nil, err
	}
	ev := normalizeEvent(wire)
	return &ev, nil
}

// Deals implements domain.EventRepository.
func (r *EventRepositoryImpl) Deals(ctx context.Context, eventID string, maxDistanceMiles float64) ([]domain.Deal, error) {
	q := url.Values{}
	q.Set("max_distance", formatFloat(maxDistanceMiles))
	var deals []domain.Deal
	if err := r.client.get(ctx, "list_event_deals", "/events/"+url.PathEscape(eventID)+"/deals", q, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// DealRepositoryImpl implements domain.DealRepository over the REST API.
type DealRepositoryImpl struct {
	client *Client
}

// NewDealRepository creates a deal repository.
func NewDealRepository(client *Client) domain.DealRepository {
	return &DealRepositoryImpl{client: client}
}

// Get implements domain.DealRepository.
func (r *DealRepositoryImpl) Get(ctx context.Context, dealID string) (*domain.Deal, error) {
	var deal domain.Deal
	if err := r.client.get(ctx, "get_deal", "/deals/"+url.PathEscape(dealID), nil, &deal); err != nil {
		return nil, err
	}
	return &deal, nil
}

// Featured implements domain.DealRepository: highest savings first.
func (r *DealRepositoryImpl) Featured(ctx context.Context, limit int) ([]domain.Deal, error) {
	return r.curated(ctx, "featured_deals", "/deals/featured", limit)
}

// Popular implements domain.DealRepository: most purchased first.
func (r *DealRepositoryImpl) Popular(ctx context.Context, limit int) ([]domain.Deal, error) {
	return r.curated(ctx, "popular_deals", "/deals/popular", limit)
}

func (r *DealRepositoryImpl) curated(ctx context.Context, op, path string, limit int) ([]domain.Deal, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var deals []domain.Deal
	if err := r.client.get(ctx, op, path, q, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// Pricing implements domain.DealRepository.
func (r *DealRepositoryImpl) Pricing(ctx context.Context, dealID string) (*domain.DealPricing, error) {
	var pricing domain.DealPricing
	if err := r.client.get(ctx, "deal_pricing", "/payments/deals/"+url.PathEscape(dealID)+"/pricing", nil, &pricing); err != nil {
		return nil, err
	}
	return &pricing, nil
}

// PaymentRepositoryImpl implements domain.PaymentRepository over the REST
// API. Intent creation carries an idempotency key and is never retried.
type PaymentRepositoryImpl struct {
	client *Client
}

// NewPaymentRepository creates a payment repository.
func NewPaymentRepository(client *Client) domain.PaymentRepository {
	return &PaymentRepositoryImpl{client: client}
}

// CreateIntent implements domain.PaymentRepository for the signed-in flow.
func (r *PaymentRepositoryImpl) CreateIntent(ctx context.Context, dealID string) (*domain.PaymentIntent, error) {
	var intent domain.PaymentIntent
	path := "/payments/deals/" + url.PathEscape(dealID) + "/create-intent"
	if err := r.client.post(ctx, "create_intent", path, nil, uuid.NewString(), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreateGuestIntent implements domain.PaymentRepository for guest checkout.
func (r *PaymentRepositoryImpl) CreateGuestIntent(ctx context.Context, dealID, guestEmail, guestPhone string) (*domain.PaymentIntent, error) {
	body := map[string]string{"guest_email": guestEmail}
	if guestPhone != "" {
		body["guest_phone"] = guestPhone
	}
	var intent domain.PaymentIntent
	path := "/payments/deals/" + url.PathEscape(dealID) + "/create-intent-guest"
	if err := r.client.post(ctx, "create_guest_intent", path, body, uuid.NewString(), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// Purchases implements domain.PaymentRepository.
func (r *PaymentRepositoryImpl) Purchases(ctx context.Context) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	if err := r.client.get(ctx, "list_purchases", "/payments/purchases", nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// RequestRedemptionPin implements domain.PaymentRepository. The PIN expires
// server-side after fifteen minutes; the window is reported to the caller so
// views can hide it again in step.
func (r *PaymentRepositoryImpl) RequestRedemptionPin(ctx context.Context, purchaseID string) (*domain.RedemptionPin, error) {
	var resp struct {
		Pin string `json:"pin"`
	}
	path := "/payments/purchases/" + url.PathEscape(purchaseID) + "/request-redemption-pin"
	if err := r.client.post(ctx, "request_redemption_pin", path, nil, "", &resp); err != nil {
		return nil, err
	}
	return &domain.RedemptionPin{Pin: resp.Pin, ExpiresIn: 15 * time.Minute}, nil
}

// UserRepositoryImpl implements domain.UserRepository over the REST API.
type UserRepositoryImpl struct {
	client *Client
}

// NewUserRepository creates a user repository.
func NewUserRepository(client *Client) domain.UserRepository {
	return &UserRepositoryImpl{client: client}
}

// Current implements domain.UserRepository.
func (r *UserRepositoryImpl) Current(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := r.client.get(ctx, "current_user", "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile implements domain.UserRepository.
func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := r.client.put(ctx, "update_profile", "/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SubmitSmsOptIn implements domain.UserRepository.
func (r *UserRepositoryImpl) SubmitSmsOptIn(ctx context.Context, optIn domain.SmsOptIn) error {
	body := map[string]any{
		"phone":          optIn.Phone,
		"consent_given":  optIn.ConsentGiven,
		"terms_accepted": optIn.TermsAccepted,
	}
	return r.client.post(ctx, "sms_opt_in", "/users/sms-opt-in", body, "", nil)
}
