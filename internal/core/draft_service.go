package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"giftlist-backend-go/internal/db"
	"giftlist-backend-go/internal/models"
)

// DraftPrefill is the editable state handed to the wizard when it opens: the
// stored list (nil for a fresh draft), its share edges, the effective UI mode
// and the pre-selected audience. It is computed once per load; the session's
// own mode pick takes precedence over anything derived from the fetch.
type DraftPrefill struct {
	List      *models.List
	Edges     []*models.ShareEdge
	Mode      UIMode
	Selection Selection
}

// draftSession is the per-draft state the coordinator keeps for the duration
// of a wizard run. The mutex serializes saves for one draft, which is what
// makes a rapid double submit of the detail step mint exactly one list.
type draftSession struct {
	mu     sync.Mutex
	listID string
	mode   ModeChoice
}

// draftService implements the DraftService interface.
type draftService struct {
	listRepo  db.ListRepository
	shareRepo db.ShareRepository
	audience  AudienceService
	activity  ActivityService
	logger    *zap.Logger

	sessMu     sync.Mutex
	byDraftKey map[string]*draftSession
	byListID   map[string]*draftSession
}

// NewDraftService creates a new DraftService instance.
func NewDraftService(lr db.ListRepository, sr db.ShareRepository, as AudienceService, act ActivityService, logger *zap.Logger) DraftService {
	return &draftService{
		listRepo:   lr,
		shareRepo:  sr,
		audience:   as,
		activity:   act,
		logger:     logger,
		byDraftKey: make(map[string]*draftSession),
		byListID:   make(map[string]*draftSession),
	}
}

// sessionForKey returns the session of one draft key, creating it on first
// use. Keys are scoped per owner so two users can never collide on a key.
func (s *draftService) sessionForKey(ownerID, draftKey string) *draftSession {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	k := ownerID + "/" + draftKey
	sess, ok := s.byDraftKey[k]
	if !ok {
		sess = &draftSession{}
		s.byDraftKey[k] = sess
	}
	return sess
}

// sessionForList returns the session already bound to a list id, if any.
func (s *draftService) sessionForList(listID string) *draftSession {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	return s.byListID[listID]
}

// sessionForListOrCreate binds a session to a list id on first use. Edit
// flows enter the wizard with an existing id and no draft key, and their
// mode picks still need a session to live in.
func (s *draftService) sessionForListOrCreate(listID string) *draftSession {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	sess, ok := s.byListID[listID]
	if !ok {
		sess = &draftSession{listID: listID}
		s.byListID[listID] = sess
	}
	return sess
}

func (s *draftService) bindList(sess *draftSession, listID string) {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	s.byListID[listID] = sess
}

// LoadOrInit returns the wizard's editable state. With an empty listID it is
// a fresh draft; otherwise the list and its share edges are fetched, and the
// UI mode is derived from stored state unless the session already holds a
// pick the user made — the fetch is an initializer, never an overwrite.
func (s *draftService) LoadOrInit(ctx context.Context, ownerID, listID string) (*DraftPrefill, error) {
	if s.listRepo == nil || s.shareRepo == nil {
		return nil, errors.New("draftService: component not initialized")
	}

	if listID == "" {
		return &DraftPrefill{Selection: NewSelection()}, nil
	}

	list, err := s.getOwnedList(ctx, ownerID, listID)
	if err != nil {
		return nil, err
	}

	edges, err := s.shareRepo.GetByListID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading share edges for list '%s': %w", ErrStoreUnavailable, listID, err)
	}

	derived := DeriveUIMode(list.Privacy, len(edges))
	mode := derived
	if sess := s.sessionForList(listID); sess != nil {
		sess.mu.Lock()
		sess.mode.Derive(derived)
		if m, ok := sess.mode.Effective(); ok {
			mode = m
		}
		sess.mu.Unlock()
	}

	return &DraftPrefill{
		List:      list,
		Edges:     edges,
		Mode:      mode,
		Selection: SelectionFromEdges(edges),
	}, nil
}

// ContinueDetails persists the detail step and returns the list id, minting
// the list with a private default when none exists yet. The per-draft lock
// plus the session-held id guarantee that two racing submits for the same
// draft key produce one create followed by one update, never two creates.
func (s *draftService) ContinueDetails(ctx context.Context, ownerID string, req models.DetailStepRequest) (string, error) {
	if s.listRepo == nil {
		return "", errors.New("draftService: listRepo not initialized")
	}

	// Validation failures are caught before any store call.
	if req.Title == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !req.Occasion.Valid() {
		return "", fmt.Errorf("%w: unknown occasion %q", ErrValidation, req.Occasion)
	}
	if req.DraftKey == "" {
		return "", fmt.Errorf("%w: draftKey is required", ErrValidation)
	}

	sess := s.sessionForKey(ownerID, req.DraftKey)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	listID := req.ListID
	if listID == "" {
		// A concurrent submit that won the race has already minted the id.
		listID = sess.listID
	}

	if listID == "" {
		list := &models.List{
			OwnerID:         ownerID,
			Title:           req.Title,
			Note:            req.Note,
			EventDate:       req.EventDate,
			ShippingAddress: req.ShippingAddress,
			Occasion:        req.Occasion,
			CoverPhotoURL:   req.CoverPhotoURL,
			CoverPhotoPath:  req.CoverPhotoPath,
			Privacy:         models.PrivacyPrivate,
		}
		newID, err := s.listRepo.Create(ctx, list)
		if err != nil {
			return "", fmt.Errorf("%w: creating list: %w", ErrStoreUnavailable, err)
		}
		sess.listID = newID
		s.bindList(sess, newID)
		s.record(ctx, ownerID, "LIST_CREATE", newID, map[string]interface{}{"title": req.Title})
		return newID, nil
	}

	list, err := s.getOwnedList(ctx, ownerID, listID)
	if err != nil {
		return "", err
	}
	list.Title = req.Title
	list.Note = req.Note
	list.EventDate = req.EventDate
	list.ShippingAddress = req.ShippingAddress
	list.Occasion = req.Occasion
	list.CoverPhotoURL = req.CoverPhotoURL
	list.CoverPhotoPath = req.CoverPhotoPath

	if err := s.listRepo.UpdateDetails(ctx, list); err != nil {
		return "", fmt.Errorf("%w: updating details of list '%s': %w", ErrStoreUnavailable, listID, err)
	}
	sess.listID = listID
	s.bindList(sess, listID)
	s.record(ctx, ownerID, "DETAILS_UPDATE", listID, nil)
	return listID, nil
}

// ContinuePrivacy persists the privacy step as a two-step saga: the privacy
// fields first, then the full share replacement. Both writes are idempotent
// full-replacements, so when either fails the caller simply retries the
// whole step; nothing needs rolling back.
func (s *draftService) ContinuePrivacy(ctx context.Context, ownerID, listID string, req models.PrivacyStepRequest) error {
	if s.listRepo == nil || s.audience == nil {
		return errors.New("draftService: component not initialized")
	}
	if listID == "" {
		// The wizard enforces step order: no privacy save before a detail
		// save has produced a list id.
		return fmt.Errorf("%w: listID is required for the privacy step", ErrValidation)
	}

	mode, err := ParseUIMode(req.Mode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	settings, err := ResolvePrivacy(mode, req.RequiresPassword, req.Password, req.GroupIDs, req.ContactIDs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if _, err := s.getOwnedList(ctx, ownerID, listID); err != nil {
		return err
	}

	if err := s.listRepo.UpdatePrivacy(ctx, listID, settings.Privacy, settings.RequiresPassword, settings.Password); err != nil {
		return fmt.Errorf("%w: updating privacy of list '%s': %w", ErrStoreUnavailable, listID, err)
	}
	if err := s.audience.Commit(ctx, listID, settings.GroupIDs, settings.ContactIDs); err != nil {
		// The privacy fields already landed; the retry re-submits both
		// writes, which is safe because both are full replacements.
		return err
	}

	sess := s.sessionForListOrCreate(listID)
	sess.mu.Lock()
	sess.mode.Pick(mode)
	sess.mu.Unlock()
	s.record(ctx, ownerID, "PRIVACY_UPDATE", listID, map[string]interface{}{
		"privacy":          string(settings.Privacy),
		"requiresPassword": settings.RequiresPassword,
		"groups":           len(settings.GroupIDs),
		"contacts":         len(settings.ContactIDs),
	})
	return nil
}

// getOwnedList fetches a list and verifies the caller owns it.
func (s *draftService) getOwnedList(ctx context.Context, ownerID, listID string) (*models.List, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrListNotFound, listID)
		}
		return nil, fmt.Errorf("%w: fetching list '%s': %w", ErrStoreUnavailable, listID, err)
	}
	if list.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: user '%s' is not owner of list '%s'", ErrForbiddenAccess, ownerID, listID)
	}
	return list, nil
}

func (s *draftService) record(ctx context.Context, actorID, action, listID string, details map[string]interface{}) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, models.Activity{
		ActorID: actorID,
		Action:  action,
		ListID:  listID,
		Details: details,
	})
}
