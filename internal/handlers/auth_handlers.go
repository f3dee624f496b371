package handlers

import (
	"errors"
	"net/http"

	"poker_club_backend/internal/services"
	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles club operator login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid club id or password.", err.Error()))
		} else if errors.Is(err, services.ErrClubNotApproved) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "This club is still awaiting approval.", err.Error()))
		} else {
			utils.LogError(err, "Login: Error from authService.Login")
			utils.RespondInternalError(c, "Failed to login.")
		}
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// clubIDFromContext returns the club id AuthMiddleware stored, responding 401 when absent.
func clubIDFromContext(c *gin.Context) (string, bool) {
	clubID := c.GetString(utils.ContextClubID)
	if clubID == "" {
		utils.LogError(errors.New("club id not found in context"), "clubIDFromContext: missing club id")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Club not authenticated.", "Missing club ID in context"))
		return "", false
	}
	return clubID, true
}

// GetCurrentClub returns the club of the authenticated session.
func (h *AuthHandler) GetCurrentClub(c *gin.Context) {
	clubID, ok := clubIDFromContext(c)
	if !ok {
		return
	}

	club, err := h.authService.GetClub(clubID)
	if err != nil {
		if errors.Is(err, services.ErrClubNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Club not found.", err.Error()))
		} else {
			utils.LogError(err, "GetCurrentClub: Error from authService.GetClub for club "+clubID)
			utils.RespondInternalError(c, "Failed to retrieve club.")
		}
		return
	}
	c.JSON(http.StatusOK, club)
}

// Logout acknowledges a logout. Tokens are stateless, the client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully. Please discard your token."})
}
