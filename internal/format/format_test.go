package format

import (
	"testing"

	"github.com/vadesa1/stans-events-web/domain"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", "Date TBD"},
		{"garbage", "not-a-date", "Date TBD"},
		{"plain date", "2025-12-01", "Dec 1, 2025"},
		{"rfc3339", "2025-12-01T19:30:00Z", "Dec 1, 2025"},
		{"no timezone", "2025-07-04T18:00:00", "Jul 4, 2025"},
		{"single digit day", "2026-01-09", "Jan 9, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(tt.input); got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", "Date & Time TBD"},
		{"garbage", "soon", "Date & Time TBD"},
		{"evening show", "2025-12-01T19:30:00Z", "Dec 1, 2025 7:30 PM"},
		{"morning show", "2025-12-01T09:05:00Z", "Dec 1, 2025 9:05 AM"},
		{"date only defaults to midnight", "2025-12-01", "Dec 1, 2025 12:00 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateTime(tt.input); got != tt.want {
				t.Errorf("DateTime(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEventDate(t *testing.T) {
	tests := []struct {
		name string
		ev   domain.Event
		want string
	}{
		{
			name: "flat shape",
			ev:   domain.Event{Date: "2025-12-01"},
			want: "Dec 1, 2025",
		},
		{
			name: "provider shape with dateTime",
			ev: domain.Event{Dates: &domain.EventDates{
				Start: domain.EventStart{DateTime: "2025-12-01T19:30:00Z", LocalDate: "2025-12-02"},
			}},
			want: "Dec 1, 2025",
		},
		{
			name: "provider shape falls back to localDate",
			ev: domain.Event{Dates: &domain.EventDates{
				Start: domain.EventStart{LocalDate: "2025-12-02"},
			}},
			want: "Dec 2, 2025",
		},
		{
			name: "provider shape missing both fields",
			ev:   domain.Event{Dates: &domain.EventDates{}},
			want: "Date TBD",
		},
		{
			name: "provider shape wins over flat",
			ev: domain.Event{
				Date:  "2025-01-01",
				Dates: &domain.EventDates{Start: domain.EventStart{LocalDate: "2025-06-15"}},
			},
			want: "Jun 15, 2025",
		},
		{
			name: "nothing at all",
			ev:   domain.Event{},
			want: "Date TBD",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EventDate(&tt.ev); got != tt.want {
				t.Errorf("EventDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventDateTimePlaceholder(t *testing.T) {
	ev := domain.Event{Dates: &domain.EventDates{}}
	if got := EventDateTime(&ev); got != "Date & Time TBD" {
		t.Errorf("EventDateTime() = %q, want %q", got, "Date & Time TBD")
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{99.99, "$99.99"},
		{1234.5, "$1,234.50"},
		{1234567.89, "$1,234,567.89"},
		{-42.25, "-$42.25"},
		{19.999, "$20.00"},
	}
	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestSavings(t *testing.T) {
	tests := []struct {
		name       string
		original   float64
		discounted float64
		want       int
	}{
		{"half off", 100, 50, 50},
		{"rounds down", 30, 20, 33},
		{"rounds half away from zero", 40, 25, 38},
		{"no discount", 25, 25, 0},
		{"zero original", 0, 10, 0},
		{"negative original", -10, 5, 0},
		{"full discount", 80, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Savings(tt.original, tt.discounted); got != tt.want {
				t.Errorf("Savings(%v, %v) = %d, want %d", tt.original, tt.discounted, got, tt.want)
			}
		})
	}
}
