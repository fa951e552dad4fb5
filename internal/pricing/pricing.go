// Package pricing holds the booking arithmetic shared by the booking service and
// the quote endpoint used for live previews.
package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const Day = 24 * time.Hour

// Nights returns the number of started days between checkIn and checkOut.
// The difference is taken in absolute value, so callers must check the order themselves.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		diff = -diff
	}
	nights := int(diff / Day)
	if diff%Day != 0 {
		nights++
	}
	return nights
}

func PropertyTotal(price float64, guests int) float64 {
	return price * float64(guests)
}

func GuesthouseTotal(pricePerNight float64, nights, guests int) float64 {
	return pricePerNight * float64(nights) * float64(guests)
}

// SameAmount compares two prices to the cent.
func SameAmount(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts the date-only values sent by date inputs as well as full timestamps.
// Date-only values are read as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// Quote is the result of pricing a stay.
type Quote struct {
	NumberOfNights int     `json:"numberOfNights"`
	TotalPrice     float64 `json:"totalprice"`
}

// QuoteGuesthouse prices a per-night stay. It fails when checkOut is not after checkIn.
func QuoteGuesthouse(pricePerNight float64, checkIn, checkOut time.Time, guests int) (Quote, error) {
	if !checkOut.After(checkIn) {
		return Quote{}, fmt.Errorf("check-out must be after check-in")
	}
	nights := Nights(checkIn, checkOut)
	return Quote{
		NumberOfNights: nights,
		TotalPrice:     GuesthouseTotal(pricePerNight, nights, guests),
	}, nil
}
