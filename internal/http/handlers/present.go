package handlers

import (
	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/format"
	"github.com/vadesa1/stans-events-web/internal/views"
)

// The view types decorate domain values with render-ready display strings
// so pages never format dates or money themselves. Every amount and date
// came from the server; this layer only formats.

// EventView is an event plus its display dates.
type EventView struct {
	*domain.Event
	DateDisplay     string `json:"date_display"`
	DateTimeDisplay string `json:"date_time_display"`
}

// DealView is a deal plus its display prices. The savings percentage is
// the server's value, computed from the price pair when the server sent
// none.
type DealView struct {
	domain.Deal
	OriginalPriceDisplay   string `json:"original_price_display"`
	DiscountedPriceDisplay string `json:"discounted_price_display"`
	SavingsPercentage      int    `json:"savings_percentage"`
}

// PricingView is a checkout pricing breakdown plus its display amounts.
type PricingView struct {
	*domain.DealPricing
	OriginalPriceDisplay   string `json:"original_price_display"`
	DiscountedPriceDisplay string `json:"discounted_price_display"`
	PlatformFeeDisplay     string `json:"platform_fee_display"`
	TotalAmountDisplay     string `json:"total_amount_display"`
}

// PurchaseView is a purchase plus its display purchase date.
type PurchaseView struct {
	domain.Purchase
	PurchaseDateDisplay string    `json:"purchase_date_display"`
	Deal                *DealView `json:"deal,omitempty"`
}

// EventDetailsView is the rendered event page body.
type EventDetailsView struct {
	Event        EventView  `json:"event"`
	Deals        []DealView `json:"deals,omitempty"`
	DealsEnabled bool       `json:"deals_enabled"`
}

// DealDetailsView is the rendered deal page body.
type DealDetailsView struct {
	Deal        DealView     `json:"deal"`
	Pricing     *PricingView `json:"pricing,omitempty"`
	Related     []DealView   `json:"related,omitempty"`
	Expired     bool         `json:"expired"`
	NotYetValid bool         `json:"not_yet_valid"`
}

// CheckoutView is the rendered checkout page body.
type CheckoutView struct {
	Deal      DealView              `json:"deal"`
	Pricing   *PricingView          `json:"pricing,omitempty"`
	Intent    *domain.PaymentIntent `json:"intent"`
	ReturnURL string                `json:"return_url"`
}

// VouchersView is the rendered purchase history body.
type VouchersView struct {
	Active   []PurchaseView `json:"active"`
	Redeemed []PurchaseView `json:"redeemed"`
}

func presentEvent(ev *domain.Event) EventView {
	return EventView{
		Event:           ev,
		DateDisplay:     format.EventDate(ev),
		DateTimeDisplay: format.EventDateTime(ev),
	}
}

func presentEvents(events []domain.Event) []EventView {
	if len(events) == 0 {
		return nil
	}
	out := make([]EventView, len(events))
	for i := range events {
		out[i] = presentEvent(&events[i])
	}
	return out
}

func presentDeal(d domain.Deal) DealView {
	savings := d.SavingsPercentage
	if savings == 0 {
		savings = format.Savings(d.OriginalPrice, d.DiscountedPrice)
	}
	return DealView{
		Deal:                   d,
		OriginalPriceDisplay:   format.Currency(d.OriginalPrice),
		DiscountedPriceDisplay: format.Currency(d.DiscountedPrice),
		SavingsPercentage:      savings,
	}
}

func presentDeals(deals []domain.Deal) []DealView {
	if len(deals) == 0 {
		return nil
	}
	out := make([]DealView, len(deals))
	for i, d := range deals {
		out[i] = presentDeal(d)
	}
	return out
}

func presentPricing(p *domain.DealPricing) *PricingView {
	if p == nil {
		return nil
	}
	return &PricingView{
		DealPricing:            p,
		OriginalPriceDisplay:   format.Currency(p.OriginalPrice),
		DiscountedPriceDisplay: format.Currency(p.DiscountedPrice),
		PlatformFeeDisplay:     format.Currency(p.PlatformFee),
		TotalAmountDisplay:     format.Currency(p.TotalAmount),
	}
}

func presentPurchase(p domain.Purchase) PurchaseView {
	view := PurchaseView{
		Purchase:            p,
		PurchaseDateDisplay: format.Date(p.PurchaseDate),
	}
	if p.Deal != nil {
		deal := presentDeal(*p.Deal)
		view.Deal = &deal
	}
	return view
}

func presentPurchases(purchases []domain.Purchase) []PurchaseView {
	if len(purchases) == 0 {
		return nil
	}
	out := make([]PurchaseView, len(purchases))
	for i, p := range purchases {
		out[i] = presentPurchase(p)
	}
	return out
}

func presentEventDetails(d views.EventDetails) EventDetailsView {
	return EventDetailsView{
		Event:        presentEvent(d.Event),
		Deals:        presentDeals(d.Deals),
		DealsEnabled: d.DealsEnabled,
	}
}

func presentDealDetails(d views.DealDetails) DealDetailsView {
	return DealDetailsView{
		Deal:        presentDeal(*d.Deal),
		Pricing:     presentPricing(d.Pricing),
		Related:     presentDeals(d.Related),
		Expired:     d.Expired,
		NotYetValid: d.NotYetValid,
	}
}

func presentCheckout(d views.CheckoutData) CheckoutView {
	return CheckoutView{
		Deal:      presentDeal(*d.Deal),
		Pricing:   presentPricing(d.Pricing),
		Intent:    d.Intent,
		ReturnURL: d.ReturnURL,
	}
}

func presentVouchers(d views.VouchersData) VouchersView {
	return VouchersView{
		Active:   presentPurchases(d.Active),
		Redeemed: presentPurchases(d.Redeemed),
	}
}

// mapSnapshot re-types a snapshot for rendering. Only populated data is
// transformed; every other state passes through untouched.
func mapSnapshot[T, U any](snap views.Snapshot[T], fn func(T) U) views.Snapshot[U] {
	out := views.Snapshot[U]{State: snap.State, Err: snap.Err}
	if snap.State == views.StatePopulated {
		out.Data = fn(snap.Data)
	}
	return out
}
