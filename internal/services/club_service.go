package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"poker_club_backend/internal/clubfilter"
	"poker_club_backend/internal/metrics"
	"poker_club_backend/internal/models"
	"poker_club_backend/internal/repositories"
	"poker_club_backend/pkg/utils"
)

// --- Custom Service Errors for Club ---
var (
	ErrClubNotFound   = errors.New("club not found")
	ErrClubExists     = errors.New("a club with this name is already listed")
	ErrClubValidation = errors.New("club data validation error")
)

const defaultCity = "Bangalore"

// --- Club DTOs ---

// AmenityList accepts either a JSON array or the comma separated string the submission form sends.
type AmenityList []string

func (a *AmenityList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = AmenityList(utils.SplitCommaList(strings.Join(list, ",")))
		return nil
	}
	var csv string
	if err := json.Unmarshal(data, &csv); err != nil {
		return fmt.Errorf("amenities must be a list or a comma separated string")
	}
	*a = AmenityList(utils.SplitCommaList(csv))
	return nil
}

type SubmitClubRequest struct {
	Name           string                  `json:"name" binding:"required"`
	Description    string                  `json:"description" binding:"required"`
	Area           string                  `json:"area" binding:"required"`
	Address        string                  `json:"address" binding:"required"`
	City           string                  `json:"city"`
	Coordinates    *models.Coordinates     `json:"coordinates"`
	Email          string                  `json:"email" binding:"required"`
	Phone          string                  `json:"phone" binding:"required"`
	Website        *string                 `json:"website"`
	Images         []string                `json:"images"`
	Video          *string                 `json:"video"`
	OperatingHours []models.OperatingHours `json:"operatingHours"`
	Stakes         []models.Stake          `json:"stakes"`
	Amenities      AmenityList             `json:"amenities"`
}

// ClubListItem is a directory card: the club plus the labels derived for display.
type ClubListItem struct {
	models.Club
	StakesRange string                 `json:"stakes_range"`
	TodayHours  *models.OperatingHours `json:"today_hours,omitempty"`
}

// ClubListResult is one page render of the directory.
type ClubListResult struct {
	Clubs         []ClubListItem `json:"data"`
	Total         int            `json:"total"`
	ActiveFilters int            `json:"active_filters"`
}

// --- ClubService Interface ---
type ClubService interface {
	ListClubs(criteria clubfilter.Criteria) (*ClubListResult, error)
	ListAreas() ([]string, error)
	GetClub(id string) (*models.Club, error)
	SubmitClub(req SubmitClubRequest) (*models.Club, error)
}

// --- clubService Implementation ---
type clubService struct {
	clubRepo repositories.ClubRepository
	liveRepo repositories.LiveUpdateRepository
	db       *sql.DB
	metrics  *metrics.Metrics
	memo     clubfilter.Memo
	now      func() time.Time
}

// NewClubService creates a new instance of ClubService. m may be nil.
func NewClubService(clubRepo repositories.ClubRepository, liveRepo repositories.LiveUpdateRepository, db *sql.DB, m *metrics.Metrics) ClubService {
	return &clubService{
		clubRepo: clubRepo,
		liveRepo: liveRepo,
		db:       db,
		metrics:  m,
		now:      time.Now,
	}
}

// MergeLiveUpdates returns copies of clubs with liveStatus replaced by the
// entry whose redirect_url equals the club id. Clubs without an entry keep
// whatever live status they had.
func MergeLiveUpdates(clubs []models.Club, entries []models.LiveUpdateEntry) []models.Club {
	byID := make(map[string]models.LiveStatus, len(entries))
	for _, e := range entries {
		byID[e.RedirectURL] = e.LiveUpdate
	}

	merged := make([]models.Club, len(clubs))
	for i, club := range clubs {
		if live, ok := byID[club.ID]; ok {
			live := live
			club.LiveStatus = &live
		}
		merged[i] = club
	}
	return merged
}

// StakesRangeLabel renders "₹50/₹100 - ₹500/₹1,000" for a club card.
func StakesRangeLabel(stakes []models.Stake) string {
	low, high, ok := clubfilter.StakesRange(stakes)
	if !ok {
		return "No stakes information"
	}
	return utils.StakeLabel(low.SmallBlind, low.BigBlind, low.Currency) + " - " +
		utils.StakeLabel(high.SmallBlind, high.BigBlind, high.Currency)
}

func (s *clubService) loadDirectory() ([]models.Club, error) {
	clubs, err := s.clubRepo.ListClubs(models.ClubStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}

	entries, err := s.liveRepo.GetAll()
	if err != nil {
		// Live data is optional; the directory still renders without it.
		utils.LogWarn(err, "ListClubs: live updates unavailable, listing without live data")
		return clubs, nil
	}
	return MergeLiveUpdates(clubs, entries), nil
}

func (s *clubService) ListClubs(criteria clubfilter.Criteria) (*ClubListResult, error) {
	clubs, err := s.loadDirectory()
	if err != nil {
		return nil, err
	}

	filtered := s.memo.FilterAndSort(clubs, criteria)
	s.metrics.ObserveListing(len(clubs), len(filtered))

	today := s.now().Weekday()
	items := make([]ClubListItem, 0, len(filtered))
	for _, club := range filtered {
		item := ClubListItem{Club: club, StakesRange: StakesRangeLabel(club.Stakes)}
		if hours, ok := club.HoursOn(today); ok {
			item.TodayHours = &hours
		}
		items = append(items, item)
	}

	return &ClubListResult{
		Clubs:         items,
		Total:         len(items),
		ActiveFilters: clubfilter.CountActiveFilters(criteria),
	}, nil
}

func (s *clubService) ListAreas() ([]string, error) {
	clubs, err := s.clubRepo.ListClubs(models.ClubStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubfilter.Areas(clubs), nil
}

// GetClub returns an approved club with its live status. Pending clubs are not visible.
func (s *clubService) GetClub(id string) (*models.Club, error) {
	club, err := s.clubRepo.GetClubByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club by ID: %w", err)
	}
	if club.Status != models.ClubStatusApproved {
		return nil, ErrClubNotFound
	}
	return club, nil
}

func validateClubRequest(req *SubmitClubRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Area = strings.TrimSpace(req.Area)
	req.Address = strings.TrimSpace(req.Address)
	req.City = strings.TrimSpace(req.City)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.City == "" {
		req.City = defaultCity
	}

	switch {
	case len([]rune(req.Name)) < 2:
		return fmt.Errorf("%w: club name must be at least 2 characters", ErrClubValidation)
	case utils.Slugify(req.Name) == "":
		return fmt.Errorf("%w: club name must contain letters or digits", ErrClubValidation)
	case len([]rune(req.Description)) < 10:
		return fmt.Errorf("%w: description must be at least 10 characters", ErrClubValidation)
	case len([]rune(req.Area)) < 2:
		return fmt.Errorf("%w: area is required", ErrClubValidation)
	case len([]rune(req.Address)) < 5:
		return fmt.Errorf("%w: full address is required", ErrClubValidation)
	case !utils.IsValidEmail(req.Email):
		return fmt.Errorf("%w: invalid email address", ErrClubValidation)
	case len(req.Phone) < 10:
		return fmt.Errorf("%w: valid phone number is required", ErrClubValidation)
	case len(req.Stakes) == 0:
		return fmt.Errorf("%w: at least one stake is required", ErrClubValidation)
	}

	stakeNames := make(map[string]struct{}, len(req.Stakes))
	for i := range req.Stakes {
		st := &req.Stakes[i]
		st.Name = strings.TrimSpace(st.Name)
		if st.Name == "" {
			return fmt.Errorf("%w: stake %d needs a name", ErrClubValidation, i+1)
		}
		if _, dup := stakeNames[st.Name]; dup {
			return fmt.Errorf("%w: duplicate stake name %q", ErrClubValidation, st.Name)
		}
		stakeNames[st.Name] = struct{}{}
		if st.SmallBlind < 1 || st.BigBlind < 1 || st.MinBuyIn < 1 {
			return fmt.Errorf("%w: stake %q blinds and minimum buy-in must be at least 1", ErrClubValidation, st.Name)
		}
		if st.BigBlind < st.SmallBlind {
			return fmt.Errorf("%w: stake %q big blind is below the small blind", ErrClubValidation, st.Name)
		}
		if st.MaxBuyIn != nil && *st.MaxBuyIn != 0 && *st.MaxBuyIn < st.MinBuyIn {
			return fmt.Errorf("%w: stake %q maximum buy-in is below the minimum", ErrClubValidation, st.Name)
		}
		if st.Currency == "" {
			st.Currency = "₹"
		}
	}

	days := make(map[string]struct{}, len(req.OperatingHours))
	for _, h := range req.OperatingHours {
		day := strings.ToLower(strings.TrimSpace(h.Day))
		if day == "" {
			return fmt.Errorf("%w: operating hours need a day", ErrClubValidation)
		}
		if _, dup := days[day]; dup {
			return fmt.Errorf("%w: operating hours list %s twice", ErrClubValidation, h.Day)
		}
		days[day] = struct{}{}
	}
	return nil
}

// SubmitClub records a new club for review. It is not listed until approved.
func (s *clubService) SubmitClub(req SubmitClubRequest) (*models.Club, error) {
	if err := validateClubRequest(&req); err != nil {
		return nil, err
	}

	club := &models.Club{
		ID:   utils.Slugify(req.Name),
		Name: req.Name,
		Location: models.Location{
			Area:        req.Area,
			City:        req.City,
			Address:     req.Address,
			Coordinates: req.Coordinates,
		},
		Description: req.Description,
		Images:      req.Images,
		Video:       req.Video,
		Stakes:      req.Stakes,
		ContactInfo: models.ContactInfo{
			Phone:   utils.NewNullString(req.Phone),
			Email:   utils.NewNullString(strings.TrimSpace(req.Email)),
			Website: req.Website,
		},
		OperatingHours: req.OperatingHours,
		Amenities:      []string(req.Amenities),
		Status:         models.ClubStatusPending,
	}

	if err := s.clubRepo.CreateClub(s.db, club); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrClubExists
		}
		return nil, fmt.Errorf("failed to create club in repository: %w", err)
	}
	utils.LogInfo("Club submitted for review", map[string]interface{}{"club_id": club.ID})
	return club, nil
}
