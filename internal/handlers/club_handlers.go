package handlers

import (
	"errors"
	"net/http"
	"strings"

	"poker_club_backend/internal/clubfilter"
	"poker_club_backend/internal/services"
	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClubHandler serves the public club directory.
type ClubHandler struct {
	clubService services.ClubService
}

// NewClubHandler creates a new ClubHandler.
func NewClubHandler(cs services.ClubService) *ClubHandler {
	return &ClubHandler{clubService: cs}
}

// parseCriteria reads the directory query string. Empty values mean "not set".
func parseCriteria(c *gin.Context) (clubfilter.Criteria, error) {
	criteria := clubfilter.Criteria{
		SearchTerm: c.Query("search"),
		SortOption: clubfilter.DefaultSortOption,
	}

	if area := strings.TrimSpace(c.Query("area")); area != "" && !strings.EqualFold(area, "all") {
		criteria.AreaFilter = &area
	}

	numeric := []struct {
		param string
		dest  **float64
	}{
		{"stake", &criteria.StakeFilter},
		{"small_blind", &criteria.ManualSmallBlind},
		{"big_blind", &criteria.ManualBigBlind},
		{"min_buy_in", &criteria.MinBuyInFilter},
		{"max_buy_in", &criteria.MaxBuyInFilter},
	}
	for _, n := range numeric {
		v, err := utils.ParseOptionalFloat(c.Query(n.param))
		if err != nil {
			return criteria, errors.New(n.param + ": " + err.Error())
		}
		*n.dest = v
	}

	if raw := c.Query("sort"); strings.TrimSpace(raw) != "" {
		sort := clubfilter.ParseSortOption(raw)
		if !sort.IsKnown() {
			return criteria, errors.New("sort must be one of waitlist, tables, players")
		}
		criteria.SortOption = sort
	}
	return criteria, nil
}

// ListClubs handles the filtered, sorted directory listing.
func (h *ClubHandler) ListClubs(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid filter: "+err.Error(), err.Error()))
		return
	}

	result, err := h.clubService.ListClubs(criteria)
	if err != nil {
		utils.LogError(err, "ListClubs: Error from clubService.ListClubs")
		utils.RespondInternalError(c, "Failed to fetch clubs.")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListAreas returns the areas offered by the area dropdown.
func (h *ClubHandler) ListAreas(c *gin.Context) {
	areas, err := h.clubService.ListAreas()
	if err != nil {
		utils.LogError(err, "ListAreas: Error from clubService.ListAreas")
		utils.RespondInternalError(c, "Failed to fetch areas.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": areas})
}

// GetClubByID handles the club detail page.
func (h *ClubHandler) GetClubByID(c *gin.Context) {
	id := c.Param("id")
	club, err := h.clubService.GetClub(id)
	if err != nil {
		if errors.Is(err, services.ErrClubNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Club not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetClubByID: Error from clubService.GetClub for ID "+id)
		utils.RespondInternalError(c, "Failed to fetch club.")
		return
	}
	c.JSON(http.StatusOK, club)
}

// SubmitClub handles the "list your club" form.
func (h *ClubHandler) SubmitClub(c *gin.Context) {
	var req services.SubmitClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "SubmitClub: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	club, err := h.clubService.SubmitClub(req)
	if err != nil {
		if errors.Is(err, services.ErrClubValidation) {
			utils.RespondValidationFailed(c, err.Error())
		} else if errors.Is(err, services.ErrClubExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A club with this name is already listed.", err.Error()))
		} else {
			utils.LogError(err, "SubmitClub: Error from clubService.SubmitClub")
			utils.RespondInternalError(c, "Failed to submit club.")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      club.ID,
		"status":  club.Status,
		"message": "Thanks! Your club will be listed once it has been reviewed.",
	})
}
