package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"poker_club_backend/internal/models"
	"poker_club_backend/internal/repositories"
	"poker_club_backend/pkg/utils"
)

var ErrRegistrationValidation = errors.New("registration validation error")

// RegisterPlayerRequest DTO
type RegisterPlayerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	City  string `json:"city" binding:"required"`
}

type RegistrationService interface {
	Register(req RegisterPlayerRequest) (*models.PlayerRegistration, error)
}

type registrationService struct {
	regRepo repositories.RegistrationRepository
	db      *sql.DB
}

// NewRegistrationService creates a new instance of RegistrationService.
func NewRegistrationService(regRepo repositories.RegistrationRepository, db *sql.DB) RegistrationService {
	return &registrationService{regRepo: regRepo, db: db}
}

func validateRegistration(req *RegisterPlayerRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.City = strings.TrimSpace(req.City)

	if len([]rune(req.Name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrRegistrationValidation)
	}
	if !utils.IsValidEmail(req.Email) {
		return fmt.Errorf("%w: invalid email address", ErrRegistrationValidation)
	}
	if len(req.Phone) < 10 {
		return fmt.Errorf("%w: phone number must be at least 10 digits", ErrRegistrationValidation)
	}
	if len([]rune(req.City)) < 2 {
		return fmt.Errorf("%w: city is required", ErrRegistrationValidation)
	}
	return nil
}

func (s *registrationService) Register(req RegisterPlayerRequest) (*models.PlayerRegistration, error) {
	if err := validateRegistration(&req); err != nil {
		return nil, err
	}

	reg := &models.PlayerRegistration{
		Name:  req.Name,
		Email: strings.ToLower(req.Email),
		Phone: req.Phone,
		City:  req.City,
	}
	if _, err := s.regRepo.CreateRegistration(s.db, reg); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return reg, nil
}
