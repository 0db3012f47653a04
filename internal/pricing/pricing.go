// Package pricing turns catalog display text into structured amounts and
// derives the confirmation price breakdown.
package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"salon-booking/internal/data/entity"
)

var (
	amountPattern   = regexp.MustCompile(`\d+`)
	currencyPattern = regexp.MustCompile(`^\s*([A-Za-z]{3})\s*\d`)
	durationPattern = regexp.MustCompile(`(\d+)\s*(mins|hr)`)
)

// ParsePrice extracts the first integer literal of a price descriptor such as
// "SGD 56". Text without digits yields 0.
func ParsePrice(text string) (amount float64, currency string) {
	if m := currencyPattern.FindStringSubmatch(text); m != nil {
		currency = strings.ToUpper(m[1])
	}

	match := amountPattern.FindString(text)
	if match == "" {
		return 0, currency
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, currency
	}
	return float64(n), currency
}

// ParseDuration converts "45 mins", "1 hr" or "2 hrs" to minutes.
// Unrecognized formats yield 0.
func ParseDuration(text string) int {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	if m[2] == "hr" {
		return n * 60
	}
	return n
}

// Normalize fills the structured fields of a service from its display text.
func Normalize(s *entity.Service) {
	s.Amount, s.Currency = ParsePrice(s.Price)
	s.DurationMinutes = ParseDuration(s.Duration)
}

// FormatDuration renders minutes the way the booking summary shows them,
// e.g. "1 hr 30 mins", "2 hrs", "45 mins".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	if hours == 0 {
		return fmt.Sprintf("%d mins", mins)
	}

	unit := "hr"
	if hours > 1 {
		unit = "hrs"
	}
	if mins == 0 {
		return fmt.Sprintf("%d %s", hours, unit)
	}
	return fmt.Sprintf("%d %s %d mins", hours, unit, mins)
}

// Subtotal sums the structured amounts of the selected services.
func Subtotal(services []entity.Service) float64 {
	var total float64
	for _, s := range services {
		total += s.Amount
	}
	return total
}

// TotalMinutes sums the structured durations of the selected services.
func TotalMinutes(services []entity.Service) int {
	var total int
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}

// Currency returns the currency of the first priced service.
func Currency(services []entity.Service) string {
	for _, s := range services {
		if s.Currency != "" {
			return s.Currency
		}
	}
	return ""
}
