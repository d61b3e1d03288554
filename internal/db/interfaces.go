package db

import (
	"context"
	"errors"

	"giftlist-backend-go/internal/models"
)

// ErrNotFound is returned by repositories when the requested document does
// not exist. Services match on it with errors.Is.
var ErrNotFound = errors.New("not found")

// ListRepository defines the interface for list data storage operations.
type ListRepository interface {
	Create(ctx context.Context, list *models.List) (string, error) // Returns new list ID
	GetByID(ctx context.Context, listID string) (*models.List, error)
	// UpdateDetails persists only the descriptive fields of the detail step.
	UpdateDetails(ctx context.Context, list *models.List) error
	// UpdatePrivacy persists the visibility fields. A nil password clears the
	// stored value rather than leaving it untouched.
	UpdatePrivacy(ctx context.Context, listID string, privacy models.Privacy, requiresPassword bool, password *string) error
}

// ShareRepository defines the interface for share edge storage. The edge set
// of a list is always replaced as a whole; there is no incremental patch.
type ShareRepository interface {
	GetByListID(ctx context.Context, listID string) ([]*models.ShareEdge, error)
	ReplaceForList(ctx context.Context, listID string, groupIDs, contactIDs []string) error
}

// AudienceRepository defines the interface for the share audience candidates
// (groups and contacts) plus the one-time sample seeding rule.
type AudienceRepository interface {
	GetGroups(ctx context.Context, ownerID string) ([]*models.Group, error)
	GetContacts(ctx context.Context, ownerID string) ([]*models.Contact, error)
	SeedSampleData(ctx context.Context, ownerID string) error
}

// ActivityRepository defines the interface for activity log storage.
type ActivityRepository interface {
	Create(ctx context.Context, entry models.Activity) error
}
