// Package clubfilter narrows and orders the club directory for the listing page.
// Everything here is pure: no I/O, no state carried between calls.
package clubfilter

import "strings"

// SortOption selects the ordering of the filtered directory.
type SortOption string

const (
	SortWaitlist SortOption = "waitlist" // shortest waiting list first
	SortTables   SortOption = "tables"   // most tables running first
	SortPlayers  SortOption = "players"  // most players seated first
)

// DefaultSortOption is what the listing page starts with.
const DefaultSortOption = SortWaitlist

// ParseSortOption normalises a raw query value. Unrecognised values are kept
// as-is and leave the input order untouched when sorting.
func ParseSortOption(raw string) SortOption {
	return SortOption(strings.ToLower(strings.TrimSpace(raw)))
}

// IsKnown reports whether the option reorders results.
func (o SortOption) IsKnown() bool {
	switch o {
	case SortWaitlist, SortTables, SortPlayers:
		return true
	default:
		return false
	}
}

// Criteria is the set of constraints a visitor applies to the directory.
// Nil pointers and empty strings mean "no constraint".
type Criteria struct {
	SearchTerm       string     `json:"searchTerm"`
	AreaFilter       *string    `json:"areaFilter,omitempty"`
	StakeFilter      *float64   `json:"stakeFilter,omitempty"` // small blind of a preset stake
	ManualSmallBlind *float64   `json:"manualSmallBlind,omitempty"`
	ManualBigBlind   *float64   `json:"manualBigBlind,omitempty"`
	MinBuyInFilter   *float64   `json:"minBuyInFilter,omitempty"`
	MaxBuyInFilter   *float64   `json:"maxBuyInFilter,omitempty"`
	SortOption       SortOption `json:"sortOption"`
}

// CountActiveFilters returns how many criteria fields are set, for the filter badge.
// Fields are counted independently: a stake preset together with a manual
// blind pair counts three.
func CountActiveFilters(c Criteria) int {
	count := 0
	if c.SearchTerm != "" {
		count++
	}
	if c.AreaFilter != nil && *c.AreaFilter != "" {
		count++
	}
	for _, v := range []*float64{
		c.StakeFilter,
		c.ManualSmallBlind,
		c.ManualBigBlind,
		c.MinBuyInFilter,
		c.MaxBuyInFilter,
	} {
		if v != nil {
			count++
		}
	}
	return count
}
