package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftlist-backend-go/internal/core"
	"giftlist-backend-go/internal/models"
)

// AccessHandler handles the viewer-side gate endpoints. These routes are
// public: the gate is a presentation gate in front of a shared list, not an
// authenticated surface.
type AccessHandler struct {
	accessService core.AccessService
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(as core.AccessService) *AccessHandler {
	return &AccessHandler{accessService: as}
}

func mapGateErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrWrongPassword):
		// Rejected input, not a fault: the viewer just tries again.
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: core.ErrWrongPassword.Error()}
	case errors.Is(err, core.ErrGateSessionNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrGateSessionNotFound.Error()}
	case errors.Is(err, core.ErrGateNotLocked):
		statusCode = http.StatusConflict
		errResponse = ErrorResponse{Error: core.ErrGateNotLocked.Error()}
	case errors.Is(err, core.ErrListNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrListNotFound.Error()}
	case errors.Is(err, core.ErrStoreUnavailable), errors.Is(err, core.ErrNotifyUnavailable):
		statusCode = http.StatusServiceUnavailable
		errResponse = ErrorResponse{Error: "Temporarily unavailable, please try again"}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// Open handles POST /gate/open/:listId
func (h *AccessHandler) Open(c *gin.Context) {
	listID := c.Param("listId")
	if listID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "List ID is required"})
		return
	}

	session, err := h.accessService.Open(c.Request.Context(), listID)
	if err != nil {
		mapGateErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, GateSessionResponse{Token: session.Token, State: session.State, Title: session.Title})
}

// Unlock handles POST /gate/sessions/:token/unlock
func (h *AccessHandler) Unlock(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Gate session token is required"})
		return
	}

	var req models.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	session, err := h.accessService.Unlock(c.Request.Context(), token, req.Password)
	if err != nil {
		mapGateErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, GateSessionResponse{Token: session.Token, State: session.State, Title: session.Title})
}

// RequestAccess handles POST /gate/sessions/:token/request-access
func (h *AccessHandler) RequestAccess(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Gate session token is required"})
		return
	}

	var req models.AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.accessService.RequestAccess(c.Request.Context(), token, req); err != nil {
		mapGateErrorToStatus(c, err)
		return
	}
	// The branch never unlocks; the viewer returns to the challenge.
	c.JSON(http.StatusOK, SuccessResponse{Message: "Access request sent to the list owner"})
}
