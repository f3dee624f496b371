package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseOptionalFloat converts a query value to a float pointer.
// An empty or blank string yields nil, meaning "not set".
func ParseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s' as a number: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("'%s' is not a finite number", s)
	}
	return &f, nil
}

// ParseBool accepts the usual form encodings of a checkbox ("true", "on", "1").
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
