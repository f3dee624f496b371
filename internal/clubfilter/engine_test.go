package clubfilter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poker_club_backend/internal/models"
)

func ptr[T any](v T) *T { return &v }

func stake(name string, sb, bb, minBuyIn float64, maxBuyIn *float64) models.Stake {
	return models.Stake{Name: name, SmallBlind: sb, BigBlind: bb, MinBuyIn: minBuyIn, MaxBuyIn: maxBuyIn, Currency: "₹"}
}

func club(id, name, area, address string, stakes ...models.Stake) models.Club {
	return models.Club{
		ID:       id,
		Name:     name,
		Location: models.Location{Area: area, City: "Bangalore", Address: address},
		Stakes:   stakes,
	}
}

func withLive(c models.Club, waiting, tables, players int) models.Club {
	c.LiveStatus = &models.LiveStatus{WaitingList: waiting, TablesRunning: tables, TotalPlayers: players}
	return c
}

func ids(clubs []models.Club) []string {
	out := make([]string, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterAndSortClubs_NoCriteriaKeepsOrder(t *testing.T) {
	clubs := []models.Club{
		withLive(club("b", "B", "X", "1"), 5, 1, 1),
		club("a", "A", "Y", "2"),
		withLive(club("c", "C", "Z", "3"), 0, 9, 9),
	}

	got := FilterAndSortClubs(clubs, Criteria{})
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))

	got = FilterAndSortClubs(clubs, Criteria{SortOption: "distance"})
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))
}

func TestFilterAndSortClubs_Search(t *testing.T) {
	royal := club("royal", "Royal Flush Poker", "Indiranagar", "123 MG Road")
	clubs := []models.Club{royal}

	tests := []struct {
		name   string
		term   string
		wantIn bool
	}{
		{name: "name lowercase", term: "royal", wantIn: true},
		{name: "area lowercase", term: "indiranagar", wantIn: true},
		{name: "address mixed case", term: "mg ROAD", wantIn: true},
		{name: "no match", term: "xyz", wantIn: false},
		{name: "empty term", term: "", wantIn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSortClubs(clubs, Criteria{SearchTerm: tt.term})
			if tt.wantIn {
				assert.Equal(t, []string{"royal"}, ids(got))
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestFilterAndSortClubs_Area(t *testing.T) {
	clubs := []models.Club{
		club("a", "A", "Indiranagar", "1"),
		club("b", "B", "Koramangala", "2"),
	}

	assert.Equal(t, []string{"b"}, ids(FilterAndSortClubs(clubs, Criteria{AreaFilter: ptr("Koramangala")})))
	assert.Empty(t, FilterAndSortClubs(clubs, Criteria{AreaFilter: ptr("koramangala")}), "area match is case-sensitive")
	assert.Len(t, FilterAndSortClubs(clubs, Criteria{AreaFilter: ptr("")}), 2, "empty area is no constraint")
}

func TestFilterAndSortClubs_Stakes(t *testing.T) {
	c100 := club("c100", "C", "A", "1", stake("Low", 100, 200, 10000, nil))
	c100x300 := club("c300", "D", "A", "1", stake("Odd", 100, 300, 10000, nil))
	noStakes := club("none", "E", "A", "1")
	clubs := []models.Club{c100, c100x300, noStakes}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "preset small blind 100", criteria: Criteria{StakeFilter: ptr(100.0)}, want: []string{"c100", "c300"}},
		{name: "preset small blind 200", criteria: Criteria{StakeFilter: ptr(200.0)}, want: []string{}},
		{
			name:     "manual pair 100/200",
			criteria: Criteria{ManualSmallBlind: ptr(100.0), ManualBigBlind: ptr(200.0)},
			want:     []string{"c100"},
		},
		{
			name:     "manual pair 100/300",
			criteria: Criteria{ManualSmallBlind: ptr(100.0), ManualBigBlind: ptr(300.0)},
			want:     []string{"c300"},
		},
		{
			name:     "manual pair overrides preset",
			criteria: Criteria{StakeFilter: ptr(500.0), ManualSmallBlind: ptr(100.0), ManualBigBlind: ptr(300.0)},
			want:     []string{"c300"},
		},
		{
			name:     "one sided manual blind passes everything",
			criteria: Criteria{ManualSmallBlind: ptr(999.0)},
			want:     []string{"c100", "c300", "none"},
		},
		{
			name:     "one sided manual blind falls back to preset",
			criteria: Criteria{ManualBigBlind: ptr(999.0), StakeFilter: ptr(100.0)},
			want:     []string{"c100", "c300"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterAndSortClubs(clubs, tt.criteria)))
		})
	}
}

func TestFilterAndSortClubs_BuyIn(t *testing.T) {
	bounded := club("bounded", "A", "X", "1", stake("Low", 100, 200, 10000, ptr(40000.0)))
	open := club("open", "B", "X", "1", stake("Deep", 100, 200, 10000, nil))
	zeroMax := club("zero", "C", "X", "1", stake("Zero", 100, 200, 10000, ptr(0.0)))
	clubs := []models.Club{bounded, open, zeroMax}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "inside range", criteria: Criteria{MinBuyInFilter: ptr(5000.0), MaxBuyInFilter: ptr(50000.0)}, want: []string{"bounded", "open", "zero"}},
		{name: "min above stake min", criteria: Criteria{MinBuyInFilter: ptr(20000.0)}, want: []string{}},
		{name: "max below stake max", criteria: Criteria{MaxBuyInFilter: ptr(30000.0)}, want: []string{"open", "zero"}},
		{name: "missing max always passes", criteria: Criteria{MaxBuyInFilter: ptr(1.0)}, want: []string{"open", "zero"}},
		{name: "zero min is a constraint", criteria: Criteria{MinBuyInFilter: ptr(0.0)}, want: []string{"bounded", "open", "zero"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterAndSortClubs(clubs, tt.criteria)))
		})
	}

	noStakes := []models.Club{club("none", "D", "X", "1")}
	assert.Empty(t, FilterAndSortClubs(noStakes, Criteria{MaxBuyInFilter: ptr(1.0)}), "a club without stakes cannot satisfy a buy-in bound")
}

func TestFilterAndSortClubs_Sorting(t *testing.T) {
	clubs := []models.Club{
		withLive(club("one", "1", "X", "1"), 5, 1, 10),
		withLive(club("two", "2", "X", "1"), 0, 4, 30),
		withLive(club("three", "3", "X", "1"), 3, 2, 20),
	}

	assert.Equal(t, []string{"two", "three", "one"}, ids(FilterAndSortClubs(clubs, Criteria{SortOption: SortWaitlist})))
	assert.Equal(t, []string{"two", "three", "one"}, ids(FilterAndSortClubs(clubs, Criteria{SortOption: SortTables})))
	assert.Equal(t, []string{"two", "three", "one"}, ids(FilterAndSortClubs(clubs, Criteria{SortOption: SortPlayers})))

	withMissing := append([]models.Club{club("dark", "D", "X", "1")}, clubs...)
	assert.Equal(t, []string{"dark", "two", "three", "one"}, ids(FilterAndSortClubs(withMissing, Criteria{SortOption: SortWaitlist})),
		"missing live status sorts as zero and keeps its input position among ties")
	assert.Equal(t, []string{"two", "three", "one", "dark"}, ids(FilterAndSortClubs(withMissing, Criteria{SortOption: SortTables})))
}

func TestFilterAndSortClubs_DoesNotMutateInput(t *testing.T) {
	clubs := []models.Club{
		withLive(club("a", "A", "X", "1"), 9, 0, 0),
		withLive(club("b", "B", "X", "1"), 1, 0, 0),
	}
	before := ids(clubs)

	_ = FilterAndSortClubs(clubs, Criteria{SortOption: SortWaitlist})

	assert.Equal(t, before, ids(clubs))
}

func TestFilterAndSortClubs_Idempotent(t *testing.T) {
	clubs := []models.Club{
		withLive(club("a", "Royal", "Indiranagar", "1", stake("Low", 50, 100, 5000, nil)), 2, 3, 4),
		withLive(club("b", "Aces", "HSR", "2", stake("Mid", 100, 200, 10000, ptr(40000.0))), 1, 5, 6),
	}
	criteria := Criteria{SearchTerm: "a", MinBuyInFilter: ptr(1000.0), SortOption: SortPlayers}

	first := FilterAndSortClubs(clubs, criteria)
	second := FilterAndSortClubs(clubs, criteria)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated call differs (-first +second):\n%s", diff)
	}
}

func TestCountActiveFilters(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     int
	}{
		{name: "nothing set", criteria: Criteria{SortOption: SortTables}, want: 0},
		{name: "search only", criteria: Criteria{SearchTerm: "abc"}, want: 1},
		{name: "empty area ignored", criteria: Criteria{AreaFilter: ptr("")}, want: 0},
		{
			name:     "preset and manual pair counted separately",
			criteria: Criteria{StakeFilter: ptr(100.0), ManualSmallBlind: ptr(50.0), ManualBigBlind: ptr(100.0)},
			want:     3,
		},
		{name: "zero bound still counts", criteria: Criteria{MinBuyInFilter: ptr(0.0)}, want: 1},
		{
			name: "everything",
			criteria: Criteria{
				SearchTerm: "x", AreaFilter: ptr("HSR"), StakeFilter: ptr(1.0),
				ManualSmallBlind: ptr(1.0), ManualBigBlind: ptr(2.0),
				MinBuyInFilter: ptr(1.0), MaxBuyInFilter: ptr(2.0),
			},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountActiveFilters(tt.criteria))
		})
	}
}

func TestStakesRange(t *testing.T) {
	_, _, ok := StakesRange(nil)
	assert.False(t, ok)

	stakes := []models.Stake{
		stake("Mid", 100, 200, 10000, nil),
		stake("Low", 50, 100, 5000, nil),
		stake("High", 500, 1000, 50000, nil),
		stake("Also low", 50, 150, 5000, nil),
	}
	low, high, ok := StakesRange(stakes)
	require.True(t, ok)
	assert.Equal(t, "Low", low.Name)
	assert.Equal(t, "High", high.Name)
}

func TestAreas(t *testing.T) {
	clubs := []models.Club{
		club("a", "A", "Indiranagar", "1"),
		club("b", "B", "Koramangala", "2"),
		club("c", "C", "Indiranagar", "3"),
	}
	assert.Equal(t, []string{"Indiranagar", "Koramangala"}, Areas(clubs))
	assert.Empty(t, Areas(nil))
}

func TestParseSortOption(t *testing.T) {
	assert.Equal(t, SortTables, ParseSortOption(" Tables "))
	assert.True(t, ParseSortOption("players").IsKnown())
	assert.False(t, ParseSortOption("rating").IsKnown())
}
