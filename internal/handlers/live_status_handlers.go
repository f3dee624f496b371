package handlers

import (
	"errors"
	"net/http"

	"poker_club_backend/internal/services"
	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LiveStatusHandler serves the live occupancy feed and the club update form.
type LiveStatusHandler struct {
	liveService services.LiveStatusService
}

// NewLiveStatusHandler creates a new LiveStatusHandler.
func NewLiveStatusHandler(ls services.LiveStatusService) *LiveStatusHandler {
	return &LiveStatusHandler{liveService: ls}
}

// GetLiveUpdates returns every published {redirect_url, live_update} pair.
func (h *LiveStatusHandler) GetLiveUpdates(c *gin.Context) {
	entries, err := h.liveService.GetAll()
	if err != nil {
		utils.LogError(err, "GetLiveUpdates: Error from liveService.GetAll")
		utils.RespondInternalError(c, "Failed to fetch live updates.")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *LiveStatusHandler) GetClubLiveStatus(c *gin.Context) {
	id := c.Param("id")
	status, err := h.liveService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrLiveStatusNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No live status for this club.", err.Error()))
			return
		}
		utils.LogError(err, "GetClubLiveStatus: Error from liveService.Get for club "+id)
		utils.RespondInternalError(c, "Failed to fetch live status.")
		return
	}
	c.JSON(http.StatusOK, status)
}

// UpdateLiveStatus replaces the authenticated club's live status.
func (h *LiveStatusHandler) UpdateLiveStatus(c *gin.Context) {
	clubID, ok := clubIDFromContext(c)
	if !ok {
		return
	}

	var req services.UpdateLiveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateLiveStatus: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	status, err := h.liveService.Update(clubID, *req.LiveUpdate)
	if err != nil {
		if errors.Is(err, services.ErrLiveStatusValidation) {
			utils.RespondValidationFailed(c, err.Error())
		} else if errors.Is(err, services.ErrClubNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Club not found.", err.Error()))
		} else {
			utils.LogError(err, "UpdateLiveStatus: Error from liveService.Update for club "+clubID)
			utils.RespondInternalError(c, "Failed to update live status.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect_url": clubID, "live_update": status})
}
