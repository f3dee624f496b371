package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"poker_club_backend/internal/models"
)

// OfferRepository stores the current promotion of each club.
type OfferRepository interface {
	GetByClubID(clubID string) (*models.Offer, error)
	Upsert(executor SQLExecutor, offer *models.Offer) error
}

type offerRepository struct {
	db *sql.DB
}

// NewOfferRepository creates a new instance of OfferRepository.
func NewOfferRepository(db *sql.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) GetByClubID(clubID string) (*models.Offer, error) {
	offer := &models.Offer{}
	err := r.db.QueryRow(
		`SELECT club_id, no_offers, image_url, text, updated_at FROM club_offers WHERE club_id = $1`, clubID,
	).Scan(&offer.ClubID, &offer.NoOffers, &offer.ImageURL, &offer.Text, &offer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting offer for club %s: %v", ErrDatabaseError, clubID, err)
	}
	return offer, nil
}

func (r *offerRepository) Upsert(executor SQLExecutor, offer *models.Offer) error {
	offer.UpdatedAt = time.Now()
	query := `INSERT INTO club_offers (club_id, no_offers, image_url, text, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (club_id) DO UPDATE SET
	            no_offers = EXCLUDED.no_offers, image_url = EXCLUDED.image_url,
	            text = EXCLUDED.text, updated_at = EXCLUDED.updated_at`
	if _, err := executor.Exec(query, offer.ClubID, offer.NoOffers, offer.ImageURL, offer.Text, offer.UpdatedAt); err != nil {
		return wrapWriteError(err, "upserting offer for club "+offer.ClubID)
	}
	return nil
}
