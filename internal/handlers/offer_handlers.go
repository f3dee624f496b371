package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"poker_club_backend/internal/services"
	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OfferHandler serves club promotions.
type OfferHandler struct {
	offerService services.OfferService
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(ofs services.OfferService) *OfferHandler {
	return &OfferHandler{offerService: ofs}
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	id := c.Param("id")
	offer, err := h.offerService.Get(id)
	if err != nil {
		utils.LogError(err, "GetOffer: Error from offerService.Get for club "+id)
		utils.RespondInternalError(c, "Failed to fetch offer.")
		return
	}
	c.JSON(http.StatusOK, offer)
}

// UpdateOffer handles the multipart offer form of the authenticated club.
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	clubID, ok := clubIDFromContext(c)
	if !ok {
		return
	}

	req := services.UpdateOfferRequest{
		NoOffers: utils.ParseBool(c.PostForm("no_offers")),
		Text:     c.PostForm("text"),
	}

	var image *multipart.FileHeader
	if fh, err := c.FormFile("image"); err == nil {
		image = fh
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid image upload.", err.Error()))
		return
	}

	offer, err := h.offerService.Update(clubID, req, image)
	if err != nil {
		if errors.Is(err, services.ErrOfferValidation) || errors.Is(err, services.ErrOfferImage) {
			utils.RespondValidationFailed(c, err.Error())
		} else if errors.Is(err, services.ErrClubNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Club not found.", err.Error()))
		} else {
			utils.LogError(err, "UpdateOffer: Error from offerService.Update for club "+clubID)
			utils.RespondInternalError(c, "Failed to update offer.")
		}
		return
	}
	c.JSON(http.StatusOK, offer)
}
