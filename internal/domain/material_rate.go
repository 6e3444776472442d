package domain

import "strings"

// MaterialRate is one purchasable material type at one location.
// Rates are managed by the admin surface; this service only reads them.
type MaterialRate struct {
	ID       int
	Name     string
	Rate     float64
	Unit     string
	Location string
}

// MatchesLocation compares locations the way the rate catalog is filtered:
// case-insensitive exact match.
func (m MaterialRate) MatchesLocation(location string) bool {
	return strings.EqualFold(m.Location, location)
}
