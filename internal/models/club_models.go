package models

import (
	"strings"
	"time"
)

// ClubStatus defines the review state of a club listing
type ClubStatus string

const (
	ClubStatusPending  ClubStatus = "pending"
	ClubStatusApproved ClubStatus = "approved"
)

// Club represents a poker room listed in the directory.
// JSON names follow the front-end contract (camelCase).
type Club struct {
	ID             string           `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	Location       Location         `json:"location"`
	Description    string           `json:"description" db:"description"`
	Images         []string         `json:"images" db:"images"`
	Video          *string          `json:"video,omitempty" db:"video"`
	Stakes         []Stake          `json:"stakes" db:"stakes"`
	ContactInfo    ContactInfo      `json:"contactInfo" db:"contact_info"`
	OperatingHours []OperatingHours `json:"operatingHours" db:"operating_hours"`
	Amenities      []string         `json:"amenities" db:"amenities"`
	LiveStatus     *LiveStatus      `json:"liveStatus,omitempty"`
	Status         ClubStatus       `json:"status,omitempty" db:"status"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`
}

// Location is where a club is.
type Location struct {
	Area        string       `json:"area" db:"area"`
	City        string       `json:"city" db:"city"`
	Address     string       `json:"address" db:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// Stake is a blind level / buy-in tier offered by a club.
// Amounts are float64 so fractional blinds survive the JSON round trip unchanged.
type Stake struct {
	Name       string   `json:"name"`
	SmallBlind float64  `json:"smallBlind"`
	BigBlind   float64  `json:"bigBlind"`
	MinBuyIn   float64  `json:"minBuyIn"`
	MaxBuyIn   *float64 `json:"maxBuyIn,omitempty"`
	Currency   string   `json:"currency"`
}

// HasMaxBuyIn reports whether the stake carries an upper buy-in bound.
// A zero bound counts as unset.
func (s Stake) HasMaxBuyIn() bool {
	return s.MaxBuyIn != nil && *s.MaxBuyIn != 0
}

type ContactInfo struct {
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Website *string `json:"website,omitempty"`
}

// OperatingHours holds the opening window for one weekday ("Monday" ... "Sunday").
type OperatingHours struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// HoursOn returns the operating hours listed for the given weekday, if any.
func (c Club) HoursOn(day time.Weekday) (OperatingHours, bool) {
	name := day.String()
	for _, h := range c.OperatingHours {
		if strings.EqualFold(h.Day, name) {
			return h, true
		}
	}
	return OperatingHours{}, false
}

// StakeNamed looks up a stake by its name.
func (c Club) StakeNamed(name string) (Stake, bool) {
	for _, s := range c.Stakes {
		if s.Name == name {
			return s, true
		}
	}
	return Stake{}, false
}

// LiveStatus is the occupancy snapshot a club pushes while open.
type LiveStatus struct {
	LastUpdated      time.Time  `json:"lastUpdated"`
	TablesRunning    int        `json:"tablesRunning"`
	TotalPlayers     int        `json:"totalPlayers"`
	WaitingList      int        `json:"waitingList"`
	ExpectedWaitTime *int       `json:"expectedWaitTime,omitempty"` // minutes
	NextCallTime     *string    `json:"nextCallTime,omitempty"`     // free text, usually HH:MM
	Games            []LiveGame `json:"games"`
}

// LiveGame is the per-stake breakdown of a live status. StakeID names a Stake of the same club.
type LiveGame struct {
	StakeID       string `json:"stakeId"`
	TablesRunning int    `json:"tablesRunning"`
	Players       int    `json:"players"`
}

// LiveUpdateEntry is the wire pair returned by the live updates feed.
type LiveUpdateEntry struct {
	RedirectURL string     `json:"redirect_url"`
	LiveUpdate  LiveStatus `json:"live_update"`
}
