package core

import (
	"errors"
	"fmt"

	"giftlist-backend-go/internal/models"
)

// UIMode is the three-valued visibility the owner picks in the wizard. It is
// never stored; the backend keeps the two-valued models.Privacy and the share
// edge set, and the mode is re-derived from those on load.
type UIMode string

const (
	ModePrivate  UIMode = "private"
	ModeMyPeople UIMode = "my_people"
	ModePublic   UIMode = "public"
)

var (
	ErrInvalidMode      = errors.New("unknown privacy mode")
	ErrPasswordRequired = errors.New("a password is required when password protection is enabled")
)

// ParseUIMode validates a wire-level mode string.
func ParseUIMode(s string) (UIMode, error) {
	switch UIMode(s) {
	case ModePrivate, ModeMyPeople, ModePublic:
		return UIMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// CollapseMode maps the three-valued UI mode onto the stored privacy field.
// The collapse is lossy: my_people and public both store as shared, and the
// share edge count disambiguates them on the way back (DeriveUIMode).
func CollapseMode(m UIMode) models.Privacy {
	if m == ModePrivate {
		return models.PrivacyPrivate
	}
	return models.PrivacyShared
}

// DeriveUIMode reconstructs the UI mode from stored state. This derivation is
// part of the wire contract between writer and reader: a shared list with at
// least one share edge is circle-limited, a shared list with none is public.
func DeriveUIMode(p models.Privacy, shareCount int) UIMode {
	if p == models.PrivacyPrivate {
		return ModePrivate
	}
	if shareCount > 0 {
		return ModeMyPeople
	}
	return ModePublic
}

// PrivacySettings is the fully resolved outcome of a privacy step: the fields
// to persist on the list plus the exact share edge set to replace. GroupIDs
// and ContactIDs are always the complete desired set; for private and public
// modes they are empty, which clears every existing edge.
type PrivacySettings struct {
	Privacy          models.Privacy
	RequiresPassword bool
	Password         *string
	GroupIDs         []string
	ContactIDs       []string
}

// ResolvePrivacy applies the mode transition rules:
//
//   - private: password protection and the share set are cleared.
//   - my_people: the confirmed selection becomes the share set (empty is
//     legal); password protection is cleared.
//   - public: the share set is cleared; the password is persisted verbatim
//     when protection is on, and stored as null when protection is off no
//     matter what was typed.
//
// Turning protection on without a password is a validation failure, caught
// before any store call.
func ResolvePrivacy(mode UIMode, requiresPassword bool, password string, groupIDs, contactIDs []string) (PrivacySettings, error) {
	switch mode {
	case ModePrivate:
		return PrivacySettings{Privacy: models.PrivacyPrivate}, nil
	case ModeMyPeople:
		return PrivacySettings{
			Privacy:    models.PrivacyShared,
			GroupIDs:   groupIDs,
			ContactIDs: contactIDs,
		}, nil
	case ModePublic:
		settings := PrivacySettings{Privacy: models.PrivacyShared}
		if requiresPassword {
			if password == "" {
				return PrivacySettings{}, ErrPasswordRequired
			}
			settings.RequiresPassword = true
			settings.Password = &password
		}
		return settings, nil
	}
	return PrivacySettings{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}

// ModeChoice keeps the in-session mode pick separate from the mode derived
// from server state, so a background refresh can never clobber an unsaved
// user choice. The user's pick always wins once made.
type ModeChoice struct {
	userPicked    *UIMode
	serverDerived *UIMode
}

// Pick records an explicit user selection.
func (c *ModeChoice) Pick(m UIMode) {
	c.userPicked = &m
}

// Derive records the mode reconstructed from stored state. It never
// overrides an existing pick.
func (c *ModeChoice) Derive(m UIMode) {
	c.serverDerived = &m
}

// Effective returns the mode to present, preferring the user's pick.
// The second return is false when neither source has produced a mode yet.
func (c *ModeChoice) Effective() (UIMode, bool) {
	if c.userPicked != nil {
		return *c.userPicked, true
	}
	if c.serverDerived != nil {
		return *c.serverDerived, true
	}
	return "", false
}
