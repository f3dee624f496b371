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
)

var (
	ErrLiveStatusNotFound   = errors.New("club has not published a live status")
	ErrLiveStatusValidation = errors.New("live status validation error")
)

// UpdateLiveStatusRequest is the body a club posts from its live update form.
type UpdateLiveStatusRequest struct {
	LiveUpdate *models.LiveStatus `json:"live_update" binding:"required"`
}

type LiveStatusService interface {
	GetAll() ([]models.LiveUpdateEntry, error)
	Get(clubID string) (*models.LiveStatus, error)
	Update(clubID string, status models.LiveStatus) (*models.LiveStatus, error)
}

type liveStatusService struct {
	liveRepo repositories.LiveUpdateRepository
	clubRepo repositories.ClubRepository
	db       *sql.DB
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewLiveStatusService creates a new instance of LiveStatusService.
func NewLiveStatusService(liveRepo repositories.LiveUpdateRepository, clubRepo repositories.ClubRepository, db *sql.DB, m *metrics.Metrics) LiveStatusService {
	return &liveStatusService{
		liveRepo: liveRepo,
		clubRepo: clubRepo,
		db:       db,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *liveStatusService) GetAll() ([]models.LiveUpdateEntry, error) {
	entries, err := s.liveRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list live updates: %w", err)
	}
	return entries, nil
}

func (s *liveStatusService) Get(clubID string) (*models.LiveStatus, error) {
	status, err := s.liveRepo.GetByClubID(clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLiveStatusNotFound
		}
		return nil, fmt.Errorf("failed to get live status: %w", err)
	}
	return status, nil
}

func validateLiveStatus(club *models.Club, status *models.LiveStatus) error {
	if status.TablesRunning < 0 || status.TotalPlayers < 0 || status.WaitingList < 0 {
		return fmt.Errorf("%w: counts cannot be negative", ErrLiveStatusValidation)
	}
	if status.ExpectedWaitTime != nil && *status.ExpectedWaitTime < 0 {
		return fmt.Errorf("%w: expected wait time cannot be negative", ErrLiveStatusValidation)
	}

	seen := make(map[string]struct{}, len(status.Games))
	for _, g := range status.Games {
		if _, ok := club.StakeNamed(g.StakeID); !ok {
			return fmt.Errorf("%w: %q is not one of this club's stakes", ErrLiveStatusValidation, g.StakeID)
		}
		if _, dup := seen[g.StakeID]; dup {
			return fmt.Errorf("%w: stake %q listed twice", ErrLiveStatusValidation, g.StakeID)
		}
		seen[g.StakeID] = struct{}{}
		if g.TablesRunning < 0 || g.Players < 0 {
			return fmt.Errorf("%w: counts for %q cannot be negative", ErrLiveStatusValidation, g.StakeID)
		}
	}
	return nil
}

// Update replaces the club's live status. The server stamps lastUpdated.
func (s *liveStatusService) Update(clubID string, status models.LiveStatus) (*models.LiveStatus, error) {
	club, err := s.clubRepo.GetClubByID(clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to load club: %w", err)
	}

	if err := validateLiveStatus(club, &status); err != nil {
		return nil, err
	}
	if status.NextCallTime != nil {
		status.NextCallTime = utils.NewNullString(strings.TrimSpace(*status.NextCallTime))
	}
	if status.Games == nil {
		status.Games = []models.LiveGame{}
	}
	status.LastUpdated = s.now().UTC()

	if err := s.liveRepo.Upsert(s.db, clubID, &status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to store live status: %w", err)
	}
	s.metrics.IncLiveUpdate()
	utils.LogDebug("Live status updated", map[string]interface{}{
		"club_id":      clubID,
		"waiting_list": status.WaitingList,
		"tables":       status.TablesRunning,
	})
	return &status, nil
}
