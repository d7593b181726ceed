package domain

import "time"

// Session is the credential issued by the identity provider. The store holds
// at most one and replaces it wholesale on every change.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	UserID       string
}

// Expired reports whether the access token is past its expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// User represents the current customer profile as returned by the backend.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// User roles known to the backend.
const (
	RoleCustomer = "customer"
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

// EventStart holds the provider-shaped start descriptor of an event. Either
// DateTime or LocalDate may be empty; the formatters fall back accordingly.
type EventStart struct {
	LocalDate string `json:"localDate,omitempty"`
	LocalTime string `json:"localTime,omitempty"`
	DateTime  string `json:"dateTime,omitempty"`
}

// EventDates is the nested date structure used by provider-sourced events.
type EventDates struct {
	Start EventStart `json:"start"`
}

// Event is the canonical event shape consumed by all views. The backend
// serves two wire shapes (a flat listing shape and a richer provider shape);
// both are collapsed into this struct at the API boundary. Date carries the
// flat string when present, Dates the provider structure.
type Event struct {
	ID           string
	Name         string
	Venue        string
	VenueAddress string
	City         string
	State        string
	Date         string
	Dates        *EventDates
	Latitude     float64
	Longitude    float64
	Category     string
	Source       string
	ImageURL     string
	Description  string
}

// Deal is a merchant offer tied to a location and optionally an event.
// Read-only from the client's perspective; all pricing is server-computed.
type Deal struct {
	ID                 string   `json:"id"`
	MerchantID         string   `json:"merchant_id"`
	EventID            string   `json:"event_id,omitempty"`
	DealType           string   `json:"deal_type"`
	Description        string   `json:"description"`
	FullDescription    string   `json:"full_description,omitempty"`
	OriginalPrice      float64  `json:"original_price"`
	DiscountedPrice    float64  `json:"discounted_price"`
	SavingsPercentage  int      `json:"savings_percentage"`
	MerchantName       string   `json:"merchant_name"`
	MerchantAddress    string   `json:"merchant_address"`
	ValidFrom          string   `json:"valid_from"`
	ValidUntil         string   `json:"valid_until"`
	Highlights         []string `json:"highlights,omitempty"`
	FinePrint          []string `json:"fine_print,omitempty"`
	Active             bool     `json:"active"`
	DistanceMiles      *float64 `json:"distance_miles,omitempty"`
	WalkingTimeMinutes *int     `json:"walking_time_minutes,omitempty"`
}

// Expired reports whether the deal's validity window has closed.
func (d *Deal) Expired(now time.Time) bool {
	t, err := time.Parse(time.RFC3339, d.ValidUntil)
	if err != nil {
		return false
	}
	return t.Before(now)
}

// NotYetValid reports whether the deal's validity window has not opened.
func (d *Deal) NotYetValid(now time.Time) bool {
	t, err := time.Parse(time.RFC3339, d.ValidFrom)
	if err != nil {
		return false
	}
	return t.After(now)
}

// Purchase statuses. Transitions happen server-side; the client only
// observes the current value.
const (
	PurchasePending   = "pending"
	PurchaseCompleted = "completed"
	PurchaseFailed    = "failed"
	PurchaseCanceled  = "canceled"
)

// Purchase is a voucher bought by the current user (or a guest).
type Purchase struct {
	ID              string `json:"id"`
	DealID          string `json:"deal_id"`
	UserID          string `json:"user_id,omitempty"`
	GuestEmail      string `json:"guest_email,omitempty"`
	GuestPhone      string `json:"guest_phone,omitempty"`
	PaymentIntentID string `json:"payment_intent_id"`
	Status          string `json:"status"`
	VoucherCode     string `json:"voucher_code"`
	PurchaseDate    string `json:"purchase_date"`
	RedemptionDate  string `json:"redemption_date,omitempty"`
	Deal            *Deal  `json:"deal,omitempty"`
}

// Redeemed reports whether the voucher reached its terminal redeemed state.
// A redeemed voucher never exposes a PIN affordance again.
func (p *Purchase) Redeemed() bool { return p.RedemptionDate != "" }

// Redeemable reports whether the voucher can currently be redeemed.
func (p *Purchase) Redeemable() bool {
	return p.Status == PurchaseCompleted && !p.Redeemed()
}

// DealPricing is the server-computed checkout breakdown. The client never
// derives these numbers itself; it only formats them.
type DealPricing struct {
	OriginalPrice     float64 `json:"original_price"`
	DiscountedPrice   float64 `json:"discounted_price"`
	PlatformFee       float64 `json:"platform_fee"`
	TotalAmount       float64 `json:"total_amount"`
	SavingsPercentage int     `json:"savings_percentage"`
}

// PaymentIntent carries everything the payment widget needs. The client
// hands ClientSecret plus a return URL to the widget and never touches card
// data.
type PaymentIntent struct {
	ClientSecret    string `json:"client_secret"`
	PublishableKey  string `json:"publishableKey"`
	StripeAccountID string `json:"stripeAccountId"`
	PurchaseID      string `json:"purchase_id"`
}

// RedemptionPin is a short-lived code shown to the merchant at redemption.
type RedemptionPin struct {
	Pin       string
	ExpiresIn time.Duration
}

// Location is a lat/lon pair from the geolocation provider.
type Location struct {
	Latitude  float64
	Longitude float64
}

// EventSearch holds the filter set accepted by the events listing and
// search endpoints.
type EventSearch struct {
	Query     string
	Category  string
	Latitude  *float64
	Longitude *float64
	Radius    *float64
	StartDate string
	EndDate   string
	Size      int
	Skip      int
}

// ProfileUpdate is the mutable subset of the user profile.
type ProfileUpdate struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// SignUpParams holds account creation input.
type SignUpParams struct {
	Email    string
	Password string
	FullName string
}

// SmsOptIn is the SMS consent submission from the opt-in page.
type SmsOptIn struct {
	Phone         string
	ConsentGiven  bool
	TermsAccepted bool
}
