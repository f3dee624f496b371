package models

import "time"

// Offer is the promotion a club shows on its detail page
type Offer struct {
	ClubID    string    `json:"club_id" db:"club_id"`
	NoOffers  bool      `json:"no_offers" db:"no_offers"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	Text      string    `json:"text" db:"text"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PlayerRegistration is a visitor who signed up through the directory
type PlayerRegistration struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	City      string    `json:"city" db:"city"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
