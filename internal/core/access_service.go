package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"giftlist-backend-go/internal/db"
	"giftlist-backend-go/internal/models"
	"giftlist-backend-go/pkg/cache"
)

// GateState is the viewer-side state of one gate session. Unlocked is
// terminal: a session never re-locks. The request-access branch is an
// operation on a locked session, not a distinct stored state — it always
// returns the viewer to the locked challenge.
type GateState string

const (
	GateLocked   GateState = "locked"
	GateUnlocked GateState = "unlocked"
)

var (
	ErrWrongPassword       = errors.New("wrong password")
	ErrGateSessionNotFound = errors.New("gate session not found or expired")
	ErrGateNotLocked       = errors.New("gate session is not locked")
	ErrNotifyUnavailable   = errors.New("no delivery path configured for access requests")
)

// GateSession is what the viewer holds while working through the challenge.
type GateSession struct {
	Token   string    `json:"token"`
	ListID  string    `json:"listId"`
	OwnerID string    `json:"ownerId"`
	Title   string    `json:"title"`
	State   GateState `json:"state"`
}

const gateKeyPrefix = "gate:"

// accessService implements the AccessService interface. Session state lives
// in the cache so a multi-instance deployment shares it; the TTL bounds how
// long an abandoned challenge lingers.
type accessService struct {
	listRepo db.ListRepository
	sessions cache.Cache
	notifier Notifier
	activity ActivityService
	logger   *zap.Logger
	ttl      time.Duration
}

// NewAccessService creates a new AccessService instance.
func NewAccessService(lr db.ListRepository, sessions cache.Cache, n Notifier, act ActivityService, logger *zap.Logger, ttl time.Duration) AccessService {
	return &accessService{
		listRepo: lr,
		sessions: sessions,
		notifier: n,
		activity: act,
		logger:   logger,
		ttl:      ttl,
	}
}

// Open starts a gate session for viewing a list. A list that does not
// require a password reports unlocked immediately, without ever rendering a
// challenge.
func (s *accessService) Open(ctx context.Context, listID string) (*GateSession, error) {
	if s.listRepo == nil || s.sessions == nil {
		return nil, errors.New("accessService: component not initialized")
	}

	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrListNotFound, listID)
		}
		return nil, fmt.Errorf("%w: fetching list '%s': %w", ErrStoreUnavailable, listID, err)
	}

	session := &GateSession{
		Token:   uuid.NewString(),
		ListID:  list.ID,
		OwnerID: list.OwnerID,
		Title:   list.Title,
		State:   GateLocked,
	}
	if !list.RequiresPassword {
		session.State = GateUnlocked
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Unlock compares the submitted password to the stored value with exact
// string equality. A match transitions the session to unlocked, once; a
// session that is already unlocked stays unlocked without recording a second
// unlock. There is no retry limit and no lockout.
func (s *accessService) Unlock(ctx context.Context, token, password string) (*GateSession, error) {
	session, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.State == GateUnlocked {
		return session, nil
	}

	list, err := s.listRepo.GetByID(ctx, session.ListID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrListNotFound, session.ListID)
		}
		return nil, fmt.Errorf("%w: fetching list '%s': %w", ErrStoreUnavailable, session.ListID, err)
	}

	// The owner may have turned the password off since the session opened.
	if list.RequiresPassword {
		if list.Password == nil || *list.Password != password {
			return nil, ErrWrongPassword
		}
	}

	session.State = GateUnlocked
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	if s.activity != nil {
		s.activity.Record(ctx, models.Activity{Action: "GATE_UNLOCK", ListID: session.ListID})
	}
	return session, nil
}

// RequestAccess is the side branch for a viewer who lacks the password: it
// hands their contact details and the list id to the notifier and returns
// the viewer to the locked challenge. It never unlocks.
func (s *accessService) RequestAccess(ctx context.Context, token string, req models.AccessRequest) error {
	session, err := s.load(ctx, token)
	if err != nil {
		return err
	}
	if session.State != GateLocked {
		return ErrGateNotLocked
	}
	if s.notifier == nil {
		return ErrNotifyUnavailable
	}

	note := AccessRequestNote{
		ListID:    session.ListID,
		ListTitle: session.Title,
		OwnerID:   session.OwnerID,
		Name:      req.Name,
		Email:     req.Email,
	}
	if err := s.notifier.AccessRequested(ctx, note); err != nil {
		return fmt.Errorf("delivering access request for list '%s': %w", session.ListID, err)
	}
	if s.activity != nil {
		s.activity.Record(ctx, models.Activity{
			Action:  "ACCESS_REQUESTED",
			ListID:  session.ListID,
			Details: map[string]interface{}{"name": req.Name, "email": req.Email},
		})
	}
	return nil
}

func (s *accessService) save(ctx context.Context, session *GateSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding gate session '%s': %w", session.Token, err)
	}
	if err := s.sessions.Set(ctx, gateKeyPrefix+session.Token, string(raw), s.ttl); err != nil {
		return fmt.Errorf("%w: storing gate session '%s': %w", ErrStoreUnavailable, session.Token, err)
	}
	return nil
}

func (s *accessService) load(ctx context.Context, token string) (*GateSession, error) {
	if s.sessions == nil {
		return nil, errors.New("accessService: session store not initialized")
	}
	raw, err := s.sessions.Get(ctx, gateKeyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("%w: loading gate session '%s': %w", ErrStoreUnavailable, token, err)
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: token '%s'", ErrGateSessionNotFound, token)
	}
	var session GateSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decoding gate session '%s': %w", token, err)
	}
	return &session, nil
}
