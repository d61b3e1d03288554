package models

import "time"

// DetailStepRequest carries the first wizard step's fields. When ListID is
// empty the list does not exist yet and is created on this continue; DraftKey
// identifies the in-progress draft so a rapid double submit cannot mint two
// lists.
type DetailStepRequest struct {
	ListID   string `json:"listId,omitempty"`
	DraftKey string `json:"draftKey" binding:"required"`

	Title           string     `json:"title" binding:"required"`
	Note            string     `json:"note,omitempty"`
	EventDate       *time.Time `json:"eventDate,omitempty"`
	ShippingAddress string     `json:"shippingAddress,omitempty"`
	Occasion        Occasion   `json:"occasion,omitempty"`
	CoverPhotoURL   string     `json:"coverPhotoUrl,omitempty"`
	CoverPhotoPath  string     `json:"coverPhotoPath,omitempty"`
}

// PrivacyStepRequest carries the privacy wizard step. GroupIDs/ContactIDs are
// the confirmed audience selection and are only meaningful when Mode is
// my_people; Password is only meaningful when Mode is public and
// RequiresPassword is set.
type PrivacyStepRequest struct {
	Mode             string   `json:"mode" binding:"required"`
	RequiresPassword bool     `json:"requiresPassword"`
	Password         string   `json:"password,omitempty"`
	GroupIDs         []string `json:"groupIds,omitempty"`
	ContactIDs       []string `json:"contactIds,omitempty"`
}

// UnlockRequest is the viewer's answer to the password challenge.
type UnlockRequest struct {
	Password string `json:"password"`
}

// AccessRequest is the request-access branch of the gate: the viewer hands
// over contact details so the owner can share the password out-of-band.
type AccessRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}
