package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"poker_club_backend/internal/metrics"
	"poker_club_backend/internal/models"
	"poker_club_backend/internal/repositories"
	"poker_club_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrInvalidCredentials = errors.New("invalid club id or password")
	ErrClubNotApproved    = errors.New("club is awaiting approval")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

const minPasswordLength = 8

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO. The live update form sends redirect_url, the admin page sends user_id.
type LoginRequest struct {
	RedirectURL string `json:"redirect_url"`
	UserID      string `json:"user_id"`
	Password    string `json:"password" binding:"required"`
}

// ClubID returns whichever identifier the caller supplied.
func (r LoginRequest) ClubID() string {
	if id := strings.TrimSpace(r.RedirectURL); id != "" {
		return id
	}
	return strings.TrimSpace(r.UserID)
}

// AuthResponse DTO
type AuthResponse struct {
	Token       string    `json:"token"`
	RedirectURL string    `json:"redirect_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	GetClub(clubID string) (*models.Club, error)
	SetPassword(clubID, password string, approve bool) error
}

// --- authService Implementation ---
type authService struct {
	clubRepo   repositories.ClubRepository
	db         *sql.DB
	metrics    *metrics.Metrics
	bcryptCost int
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(clubRepo repositories.ClubRepository, db *sql.DB, m *metrics.Metrics) AuthService {
	return &authService{
		clubRepo:   clubRepo,
		db:         db,
		metrics:    m,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Login checks a club's password and issues a token scoped to that club.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	clubID := req.ClubID()
	if clubID == "" {
		return nil, ErrInvalidCredentials
	}

	hash, status, err := s.clubRepo.GetCredentials(clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.metrics.IncLoginRejected("unknown_club")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if hash == "" {
		s.metrics.IncLoginRejected("no_password")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		s.metrics.IncLoginRejected("bad_password")
		return nil, ErrInvalidCredentials
	}
	if status != models.ClubStatusApproved {
		s.metrics.IncLoginRejected("pending")
		return nil, ErrClubNotApproved
	}

	token, expiresAt, err := utils.GenerateClubToken(clubID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	utils.LogInfo("Club logged in", map[string]interface{}{"club_id": clubID})
	return &AuthResponse{Token: token, RedirectURL: clubID, ExpiresAt: expiresAt}, nil
}

// GetClub returns the authenticated club, whatever its status.
func (s *authService) GetClub(clubID string) (*models.Club, error) {
	club, err := s.clubRepo.GetClubByID(clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to retrieve club: %w", err)
	}
	return club, nil
}

// SetPassword stores a new password for a club and optionally approves it.
func (s *authService) SetPassword(clubID, password string, approve bool) error {
	if !utils.IsValidPasswordLength(password, minPasswordLength) {
		return ErrPasswordTooShort
	}

	_, status, err := s.clubRepo.GetCredentials(clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClubNotFound
		}
		return fmt.Errorf("failed to load club credentials: %w", err)
	}
	if approve {
		status = models.ClubStatusApproved
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.clubRepo.SetCredentials(s.db, clubID, string(hashed), status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClubNotFound
		}
		return fmt.Errorf("failed to store club credentials: %w", err)
	}
	utils.LogInfo("Club credentials updated", map[string]interface{}{"club_id": clubID, "status": string(status)})
	return nil
}
