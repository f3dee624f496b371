package clubfilter

import (
	"cmp"
	"slices"
	"strings"

	"poker_club_backend/internal/models"
)

// FilterAndSortClubs returns the clubs passing every active constraint of c,
// ordered by c.SortOption. The input slice is not modified.
func FilterAndSortClubs(clubs []models.Club, c Criteria) []models.Club {
	search := strings.ToLower(c.SearchTerm)

	filtered := make([]models.Club, 0, len(clubs))
	for _, club := range clubs {
		if !matchesSearch(club, search) ||
			!matchesArea(club, c.AreaFilter) ||
			!matchesStakes(club, c) ||
			!matchesBuyIn(club, c.MinBuyInFilter, c.MaxBuyInFilter) {
			continue
		}
		filtered = append(filtered, club)
	}

	sortClubs(filtered, c.SortOption)
	return filtered
}

func matchesSearch(club models.Club, searchLower string) bool {
	if searchLower == "" {
		return true
	}
	return strings.Contains(strings.ToLower(club.Name), searchLower) ||
		strings.Contains(strings.ToLower(club.Location.Area), searchLower) ||
		strings.Contains(strings.ToLower(club.Location.Address), searchLower)
}

// Area matching is exact and case-sensitive; the dropdown only offers stored values.
func matchesArea(club models.Club, area *string) bool {
	if area == nil || *area == "" {
		return true
	}
	return club.Location.Area == *area
}

func matchesStakes(club models.Club, c Criteria) bool {
	switch {
	case c.ManualSmallBlind != nil && c.ManualBigBlind != nil:
		small, big := *c.ManualSmallBlind, *c.ManualBigBlind
		return slices.ContainsFunc(club.Stakes, func(s models.Stake) bool {
			return s.SmallBlind == small && s.BigBlind == big
		})
	case c.StakeFilter != nil:
		small := *c.StakeFilter
		return slices.ContainsFunc(club.Stakes, func(s models.Stake) bool {
			return s.SmallBlind == small
		})
	default:
		// Nothing set, or only one half of the manual pair.
		return true
	}
}

func matchesBuyIn(club models.Club, lower, upper *float64) bool {
	if lower == nil && upper == nil {
		return true
	}
	return slices.ContainsFunc(club.Stakes, func(s models.Stake) bool {
		minOK := lower == nil || s.MinBuyIn >= *lower
		maxOK := upper == nil || !s.HasMaxBuyIn() || *s.MaxBuyIn <= *upper
		return minOK && maxOK
	})
}

func sortClubs(clubs []models.Club, option SortOption) {
	switch option {
	case SortWaitlist:
		slices.SortStableFunc(clubs, func(a, b models.Club) int {
			return cmp.Compare(waitingList(a), waitingList(b))
		})
	case SortTables:
		slices.SortStableFunc(clubs, func(a, b models.Club) int {
			return cmp.Compare(tablesRunning(b), tablesRunning(a))
		})
	case SortPlayers:
		slices.SortStableFunc(clubs, func(a, b models.Club) int {
			return cmp.Compare(totalPlayers(b), totalPlayers(a))
		})
	}
}

func waitingList(c models.Club) int {
	if c.LiveStatus == nil {
		return 0
	}
	return c.LiveStatus.WaitingList
}

func tablesRunning(c models.Club) int {
	if c.LiveStatus == nil {
		return 0
	}
	return c.LiveStatus.TablesRunning
}

func totalPlayers(c models.Club) int {
	if c.LiveStatus == nil {
		return 0
	}
	return c.LiveStatus.TotalPlayers
}

// StakesRange returns the stake with the lowest small blind and the stake with
// the highest big blind. The first stake wins ties. ok is false for an empty list.
func StakesRange(stakes []models.Stake) (low, high models.Stake, ok bool) {
	if len(stakes) == 0 {
		return models.Stake{}, models.Stake{}, false
	}
	low, high = stakes[0], stakes[0]
	for _, s := range stakes[1:] {
		if s.SmallBlind < low.SmallBlind {
			low = s
		}
		if s.BigBlind > high.BigBlind {
			high = s
		}
	}
	return low, high, true
}

// Areas lists the distinct club areas in first-seen order.
func Areas(clubs []models.Club) []string {
	seen := make(map[string]struct{}, len(clubs))
	areas := make([]string, 0, len(clubs))
	for _, c := range clubs {
		if _, ok := seen[c.Location.Area]; ok {
			continue
		}
		seen[c.Location.Area] = struct{}{}
		areas = append(areas, c.Location.Area)
	}
	return areas
}
