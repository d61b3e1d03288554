package core

import (
	"context"
	"errors"

	"giftlist-backend-go/internal/models"
)

// Sentinel errors shared by the services. Handlers map these onto HTTP
// statuses with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrListNotFound     = errors.New("list not found")
	ErrForbiddenAccess  = errors.New("user does not have permission for this action on the list")
	ErrStoreUnavailable = errors.New("store operation failed")
)

// DraftService owns the wizard lifecycle of a list: lazy creation on the
// first detail-step continue, pre-fill when editing, and per-step
// persistence before the client may advance.
type DraftService interface {
	LoadOrInit(ctx context.Context, ownerID, listID string) (*DraftPrefill, error)
	ContinueDetails(ctx context.Context, ownerID string, req models.DetailStepRequest) (string, error)
	ContinuePrivacy(ctx context.Context, ownerID, listID string, req models.PrivacyStepRequest) error
}

// AudienceService resolves the share audience: candidate loading (with the
// empty-audience seeding rule) and the single write path for share edges.
type AudienceService interface {
	LoadCandidates(ctx context.Context, ownerID string) (*AudienceCandidates, error)
	Commit(ctx context.Context, listID string, groupIDs, contactIDs []string) error
}

// AccessService is the consumption-time gate that withholds a list behind
// its password challenge.
type AccessService interface {
	Open(ctx context.Context, listID string) (*GateSession, error)
	Unlock(ctx context.Context, token, password string) (*GateSession, error)
	RequestAccess(ctx context.Context, token string, req models.AccessRequest) error
}

// ActivityService records list lifecycle events, best-effort.
type ActivityService interface {
	Record(ctx context.Context, entry models.Activity)
}

// Notifier delivers an access request to the list owner out-of-band.
type Notifier interface {
	AccessRequested(ctx context.Context, note AccessRequestNote) error
}

// AccessRequestNote is what a locked-out viewer hands over when asking the
// owner for the password.
type AccessRequestNote struct {
	ListID    string `json:"listId"`
	ListTitle string `json:"listTitle"`
	OwnerID   string `json:"ownerId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}
