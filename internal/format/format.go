// Package format renders backend values for display. It never computes
// monetary amounts; every number it touches came from the server as-is.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vadesa1/stans-events-web/domain"
)

// Placeholders rendered when an event carries no usable date.
const (
	DateTBD     = "Date TBD"
	DateTimeTBD = "Date & Time TBD"
)

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006 3:04 PM"
)

// Accepted wire layouts, most specific first.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date formats a flat wire date string as "Dec 1, 2025". An empty or
// unparseable value yields the "Date TBD" placeholder.
func Date(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return DateTBD
	}
	return t.Format(dateLayout)
}

// DateTime is Date with the start time included, e.g. "Dec 1, 2025 7:30 PM".
func DateTime(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return DateTimeTBD
	}
	return t.Format(dateTimeLayout)
}

// startValue picks the usable string out of a provider-shaped date
// structure: dateTime wins over localDate, both may be missing.
func startValue(d *domain.EventDates) string {
	if d == nil {
		return ""
	}
	if d.Start.DateTime != "" {
		return d.Start.DateTime
	}
	return d.Start.LocalDate
}

// EventDate formats either event wire shape for display, preferring the
// provider structure when present.
func EventDate(ev *domain.Event) string {
	if ev.Dates != nil {
		return Date(startValue(ev.Dates))
	}
	return Date(ev.Date)
}

// EventDateTime is EventDate with the start time included.
func EventDateTime(ev *domain.Event) string {
	if ev.Dates != nil {
		return DateTime(startValue(ev.Dates))
	}
	return DateTime(ev.Date)
}

// Currency formats a dollar amount as "$1,234.50".
func Currency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(cents/100), cents%100)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Savings returns the rounded savings percentage for a price pair. A
// non-positive original price yields 0.
func Savings(originalPrice, discountedPrice float64) int {
	if originalPrice <= 0 {
		return 0
	}
	return int(math.Round((originalPrice - discountedPrice) / originalPrice * 100))
}
