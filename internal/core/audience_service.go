package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"giftlist-backend-go/internal/db"
	"giftlist-backend-go/internal/models"
)

// EdgeKind distinguishes the two audience member kinds a share edge can
// point at.
type EdgeKind string

const (
	KindGroup   EdgeKind = "group"
	KindContact EdgeKind = "contact"
)

// AudienceCandidates is the filterable picker content for one owner.
type AudienceCandidates struct {
	Groups   []*models.Group   `json:"groups"`
	Contacts []*models.Contact `json:"contacts"`
}

// audienceService implements the AudienceService interface.
type audienceService struct {
	audienceRepo db.AudienceRepository
	shareRepo    db.ShareRepository
	logger       *zap.Logger
}

// NewAudienceService creates a new AudienceService instance.
func NewAudienceService(ar db.AudienceRepository, sr db.ShareRepository, logger *zap.Logger) AudienceService {
	return &audienceService{audienceRepo: ar, shareRepo: sr, logger: logger}
}

// LoadCandidates fetches the owner's groups and contacts. An owner with
// neither gets sample entries seeded first, so the picker never opens on a
// confusing empty state; seeding is best-effort and a failure just leaves
// the picker empty.
func (s *audienceService) LoadCandidates(ctx context.Context, ownerID string) (*AudienceCandidates, error) {
	if s.audienceRepo == nil {
		return nil, errors.New("audienceService: audienceRepo not initialized")
	}

	groups, err := s.audienceRepo.GetGroups(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading groups for owner '%s': %w", ErrStoreUnavailable, ownerID, err)
	}
	contacts, err := s.audienceRepo.GetContacts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading contacts for owner '%s': %w", ErrStoreUnavailable, ownerID, err)
	}

	if len(groups) == 0 && len(contacts) == 0 {
		if err := s.audienceRepo.SeedSampleData(ctx, ownerID); err != nil {
			s.logger.Warn("failed to seed sample audience, picker stays empty",
				zap.String("ownerId", ownerID), zap.Error(err))
			return &AudienceCandidates{}, nil
		}
		if groups, err = s.audienceRepo.GetGroups(ctx, ownerID); err != nil {
			s.logger.Warn("failed to re-read groups after seeding", zap.String("ownerId", ownerID), zap.Error(err))
			groups = nil
		}
		if contacts, err = s.audienceRepo.GetContacts(ctx, ownerID); err != nil {
			s.logger.Warn("failed to re-read contacts after seeding", zap.String("ownerId", ownerID), zap.Error(err))
			contacts = nil
		}
	}

	return &AudienceCandidates{Groups: groups, Contacts: contacts}, nil
}

// Commit submits the full replacement share edge set for a list. This is the
// only write path for share edges; committing the same selection twice lands
// on the same state.
func (s *audienceService) Commit(ctx context.Context, listID string, groupIDs, contactIDs []string) error {
	if s.shareRepo == nil {
		return errors.New("audienceService: shareRepo not initialized")
	}
	if listID == "" {
		return fmt.Errorf("%w: listID is required to commit a share selection", ErrValidation)
	}
	if err := s.shareRepo.ReplaceForList(ctx, listID, groupIDs, contactIDs); err != nil {
		return fmt.Errorf("%w: replacing share edges for list '%s': %w", ErrStoreUnavailable, listID, err)
	}
	return nil
}

// FilterGroups returns the groups whose name contains the query,
// case-insensitively. An empty query matches everything. Pure function, safe
// to call on every keystroke.
func FilterGroups(groups []*models.Group, query string) []*models.Group {
	if query == "" {
		return groups
	}
	q := strings.ToLower(query)
	var out []*models.Group
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Name), q) {
			out = append(out, g)
		}
	}
	return out
}

// FilterContacts returns the contacts whose name or email contains the
// query, case-insensitively.
func FilterContacts(contacts []*models.Contact, query string) []*models.Contact {
	if query == "" {
		return contacts
	}
	q := strings.ToLower(query)
	var out []*models.Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}

// Selection is the in-progress audience choice of the picker.
type Selection struct {
	groups   map[string]bool
	contacts map[string]bool
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{groups: make(map[string]bool), contacts: make(map[string]bool)}
}

// SelectionFromEdges pre-selects from a list's existing share edges, so that
// opening the picker, changing nothing and committing is a no-op.
func SelectionFromEdges(edges []*models.ShareEdge) Selection {
	sel := NewSelection()
	for _, e := range edges {
		switch {
		case e.GroupID != "":
			sel.groups[e.GroupID] = true
		case e.ContactID != "":
			sel.contacts[e.ContactID] = true
		}
	}
	return sel
}

// Toggle flips membership of one candidate. Toggling twice restores the
// original selection.
func (s Selection) Toggle(id string, kind EdgeKind) {
	m := s.groups
	if kind == KindContact {
		m = s.contacts
	}
	if m[id] {
		delete(m, id)
	} else {
		m[id] = true
	}
}

// Has reports whether a candidate is currently selected.
func (s Selection) Has(id string, kind EdgeKind) bool {
	if kind == KindContact {
		return s.contacts[id]
	}
	return s.groups[id]
}

// GroupIDs returns the selected group ids in stable order.
func (s Selection) GroupIDs() []string {
	return sortedKeys(s.groups)
}

// ContactIDs returns the selected contact ids in stable order.
func (s Selection) ContactIDs() []string {
	return sortedKeys(s.contacts)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
