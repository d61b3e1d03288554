package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftlist-backend-go/internal/core"
	"giftlist-backend-go/internal/models"
)

// DraftHandler handles the wizard endpoints of the draft-list lifecycle.
type DraftHandler struct {
	draftService core.DraftService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(ds core.DraftService) *DraftHandler {
	return &DraftHandler{draftService: ds}
}

// mapDraftErrorToStatus maps errors from the core services to HTTP status
// codes and an ErrorResponse body.
func mapDraftErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrValidation):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: "Validation failed", Details: err.Error()}
	case errors.Is(err, core.ErrListNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrListNotFound.Error()}
	case errors.Is(err, core.ErrForbiddenAccess):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: core.ErrForbiddenAccess.Error()}
	case errors.Is(err, core.ErrStoreUnavailable):
		// The save did not land; the client keeps its form state and may
		// retry the same action.
		statusCode = http.StatusServiceUnavailable
		errResponse = ErrorResponse{Error: "Could not save, please try again"}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// GetDraft handles GET /lists/:listId/draft
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	listID := c.Param("listId")
	if listID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "List ID is required"})
		return
	}

	prefill, err := h.draftService.LoadOrInit(c.Request.Context(), userID.(string), listID)
	if err != nil {
		mapDraftErrorToStatus(c, err)
		return
	}

	list := prefill.List
	c.JSON(http.StatusOK, DraftPrefillResponse{
		ID:               list.ID,
		Title:            list.Title,
		Note:             list.Note,
		EventDate:        list.EventDate,
		ShippingAddress:  list.ShippingAddress,
		Occasion:         list.Occasion,
		CoverPhotoURL:    list.CoverPhotoURL,
		CoverPhotoPath:   list.CoverPhotoPath,
		Mode:             prefill.Mode,
		RequiresPassword: list.RequiresPassword,
		HasPassword:      list.Password != nil,
		GroupIDs:         prefill.Selection.GroupIDs(),
		ContactIDs:       prefill.Selection.ContactIDs(),
		Edges:            prefill.Edges,
	})
}

// ContinueDetails handles POST /lists/draft/details
func (h *DraftHandler) ContinueDetails(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.DetailStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	listID, err := h.draftService.ContinueDetails(c.Request.Context(), userID.(string), req)
	if err != nil {
		mapDraftErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, ContinueResponse{ListID: listID, NextStep: "privacy"})
}

// ContinuePrivacy handles POST /lists/:listId/draft/privacy
func (h *DraftHandler) ContinuePrivacy(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	listID := c.Param("listId")
	if listID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "List ID is required"})
		return
	}

	var req models.PrivacyStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.draftService.ContinuePrivacy(c.Request.Context(), userID.(string), listID, req); err != nil {
		mapDraftErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, ContinueResponse{ListID: listID, NextStep: "items"})
}
