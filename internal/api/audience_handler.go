package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giftlist-backend-go/internal/core"
)

// AudienceHandler handles the share-audience picker endpoints.
type AudienceHandler struct {
	audienceService core.AudienceService
}

// NewAudienceHandler creates a new AudienceHandler.
func NewAudienceHandler(as core.AudienceService) *AudienceHandler {
	return &AudienceHandler{audienceService: as}
}

// GetCandidates handles GET /audience. The optional q parameter applies the
// same case-insensitive substring filter the picker uses client-side.
func (h *AudienceHandler) GetCandidates(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	candidates, err := h.audienceService.LoadCandidates(c.Request.Context(), userID.(string))
	if err != nil {
		mapDraftErrorToStatus(c, err)
		return
	}

	if q := c.Query("q"); q != "" {
		candidates = &core.AudienceCandidates{
			Groups:   core.FilterGroups(candidates.Groups, q),
			Contacts: core.FilterContacts(candidates.Contacts, q),
		}
	}
	c.JSON(http.StatusOK, candidates)
}
