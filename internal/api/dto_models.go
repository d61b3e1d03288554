package api

import (
	"time"

	"giftlist-backend-go/internal/core"
	"giftlist-backend-go/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ContinueResponse returns the (possibly newly minted) list id after a
// wizard step persisted, plus where the client goes next.
type ContinueResponse struct {
	ListID   string `json:"listId"`
	NextStep string `json:"nextStep"`
}

// DraftPrefillResponse is the editable wizard state for an existing list.
// The password value itself is never echoed back; HasPassword tells the
// client whether one is stored.
type DraftPrefillResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Note             string              `json:"note,omitempty"`
	EventDate        *time.Time          `json:"eventDate,omitempty"`
	ShippingAddress  string              `json:"shippingAddress,omitempty"`
	Occasion         models.Occasion     `json:"occasion,omitempty"`
	CoverPhotoURL    string              `json:"coverPhotoUrl,omitempty"`
	CoverPhotoPath   string              `json:"coverPhotoPath,omitempty"`
	Mode             core.UIMode         `json:"mode"`
	RequiresPassword bool                `json:"requiresPassword"`
	HasPassword      bool                `json:"hasPassword"`
	GroupIDs         []string            `json:"groupIds"`
	ContactIDs       []string            `json:"contactIds"`
	Edges            []*models.ShareEdge `json:"shares"`
}

// GateSessionResponse is the viewer-facing state of a gate session.
type GateSessionResponse struct {
	Token string         `json:"token"`
	State core.GateState `json:"state"`
	Title string         `json:"title"`
}

// CoverPhotoResponse is returned by the upload endpoint: the display URL the
// client renders and the opaque storage handle it passes back in the detail
// step.
type CoverPhotoResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
