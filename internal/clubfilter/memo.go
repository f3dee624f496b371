package clubfilter

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"

	"poker_club_backend/internal/models"
)

// Memo caches the last FilterAndSortClubs result keyed on a hash of its inputs.
// The zero value is ready to use and safe for concurrent callers.
type Memo struct {
	mu       sync.Mutex
	key      uint64
	valid    bool
	result   []models.Club
	computes int
}

// FilterAndSort returns FilterAndSortClubs(clubs, c), reusing the previous
// result when neither the clubs nor the criteria changed.
func (m *Memo) FilterAndSort(clubs []models.Club, c Criteria) []models.Club {
	key, err := memoKey(clubs, c)
	if err != nil {
		return FilterAndSortClubs(clubs, c)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.valid || m.key != key {
		m.result = FilterAndSortClubs(clubs, c)
		m.key = key
		m.valid = true
		m.computes++
	}
	return slices.Clone(m.result)
}

// Computes reports how many times the memo had to recompute.
func (m *Memo) Computes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.computes
}

func memoKey(clubs []models.Club, c Criteria) (uint64, error) {
	d := xxhash.New()
	enc := json.NewEncoder(d)
	if err := enc.Encode(clubs); err != nil {
		return 0, err
	}
	if err := enc.Encode(c); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}
