package handlers

import (
	"errors"
	"net/http"

	"poker_club_backend/internal/services"
	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler holds the registration service.
type RegistrationHandler struct {
	regService services.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(rs services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regService: rs}
}

// RegisterPlayer handles the player sign-up form.
func (h *RegistrationHandler) RegisterPlayer(c *gin.Context) {
	var req services.RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RegisterPlayer: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reg, err := h.regService.Register(req)
	if err != nil {
		if errors.Is(err, services.ErrRegistrationValidation) {
			utils.RespondValidationFailed(c, err.Error())
		} else {
			utils.LogError(err, "RegisterPlayer: Error from regService.Register")
			utils.RespondInternalError(c, "Failed to register.")
		}
		return
	}
	c.JSON(http.StatusCreated, reg)
}
