package services

import (
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"poker_club_backend/internal/models"
	"poker_club_backend/internal/repositories"
	"poker_club_backend/internal/storage"
	"poker_club_backend/pkg/utils"
)

var (
	ErrOfferValidation = errors.New("offer validation error")
	ErrOfferImage      = errors.New("offer image rejected")
)

const maxOfferTextLength = 1000

// UpdateOfferRequest carries the non-file fields of the offer form.
type UpdateOfferRequest struct {
	NoOffers bool
	Text     string
}

type OfferService interface {
	Get(clubID string) (*models.Offer, error)
	Update(clubID string, req UpdateOfferRequest, image *multipart.FileHeader) (*models.Offer, error)
}

type offerService struct {
	offerRepo repositories.OfferRepository
	clubRepo  repositories.ClubRepository
	images    storage.ImageStore
	db        *sql.DB
}

// NewOfferService creates a new instance of OfferService.
func NewOfferService(offerRepo repositories.OfferRepository, clubRepo repositories.ClubRepository, images storage.ImageStore, db *sql.DB) OfferService {
	return &offerService{offerRepo: offerRepo, clubRepo: clubRepo, images: images, db: db}
}

// Get returns the club's offer. A club that never published one has no offers.
func (s *offerService) Get(clubID string) (*models.Offer, error) {
	offer, err := s.offerRepo.GetByClubID(clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.Offer{ClubID: clubID, NoOffers: true}, nil
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}

// Update publishes or clears the club's offer. Without a new image the current one is kept.
func (s *offerService) Update(clubID string, req UpdateOfferRequest, image *multipart.FileHeader) (*models.Offer, error) {
	if _, err := s.clubRepo.GetClubByID(clubID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to load club: %w", err)
	}

	current, err := s.Get(clubID)
	if err != nil {
		return nil, err
	}

	offer := &models.Offer{ClubID: clubID, NoOffers: req.NoOffers}
	if !req.NoOffers {
		offer.Text = strings.TrimSpace(req.Text)
		if len([]rune(offer.Text)) > maxOfferTextLength {
			return nil, fmt.Errorf("%w: text must be at most %d characters", ErrOfferValidation, maxOfferTextLength)
		}
		offer.ImageURL = current.ImageURL
		if image != nil {
			url, err := s.images.Save(image)
			if err != nil {
				if errors.Is(err, storage.ErrImageTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
					return nil, fmt.Errorf("%w: %v", ErrOfferImage, err)
				}
				return nil, fmt.Errorf("failed to save offer image: %w", err)
			}
			offer.ImageURL = &url
		}
		if offer.ImageURL == nil && offer.Text == "" {
			return nil, fmt.Errorf("%w: an offer needs an image or text", ErrOfferValidation)
		}
	}

	if err := s.offerRepo.Upsert(s.db, offer); err != nil {
		if image != nil && offer.ImageURL != nil {
			if rmErr := s.images.Remove(*offer.ImageURL); rmErr != nil {
				utils.LogWarn(rmErr, "OfferService: could not remove unsaved offer image")
			}
		}
		return nil, fmt.Errorf("failed to store offer: %w", err)
	}

	if current.ImageURL != nil && (offer.ImageURL == nil || *offer.ImageURL != *current.ImageURL) {
		if err := s.images.Remove(*current.ImageURL); err != nil {
			utils.LogWarn(err, "OfferService: could not remove replaced offer image")
		}
	}
	return offer, nil
}
