package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlist-backend-go/internal/models"
)

func TestParseUIMode(t *testing.T) {
	for _, valid := range []string{"private", "my_people", "public"} {
		m, err := ParseUIMode(valid)
		require.NoError(t, err)
		assert.Equal(t, UIMode(valid), m)
	}

	_, err := ParseUIMode("friends_only")
	assert.ErrorIs(t, err, ErrInvalidMode)
	_, err = ParseUIMode("")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestCollapseMode(t *testing.T) {
	assert.Equal(t, models.PrivacyPrivate, CollapseMode(ModePrivate))
	assert.Equal(t, models.PrivacyShared, CollapseMode(ModeMyPeople))
	assert.Equal(t, models.PrivacyShared, CollapseMode(ModePublic))
}

func TestDeriveUIMode(t *testing.T) {
	tests := []struct {
		name       string
		privacy    models.Privacy
		shareCount int
		want       UIMode
	}{
		{"private with no edges", models.PrivacyPrivate, 0, ModePrivate},
		{"private ignores stale edges", models.PrivacyPrivate, 3, ModePrivate},
		{"shared with edges is my_people", models.PrivacyShared, 1, ModeMyPeople},
		{"shared without edges is public", models.PrivacyShared, 0, ModePublic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveUIMode(tt.privacy, tt.shareCount))
		})
	}
}

// The collapse is lossy on purpose; what must hold is that resolving a mode
// and deriving it back from the resulting stored state round-trips.
func TestResolveDeriveRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		mode     UIMode
		groupIDs []string
	}{
		{"private", ModePrivate, nil},
		{"my_people with audience", ModeMyPeople, []string{"g1", "g2"}},
		{"my_people with empty audience collapses to public", ModeMyPeople, nil},
		{"public", ModePublic, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := ResolvePrivacy(tt.mode, false, "", tt.groupIDs, nil)
			require.NoError(t, err)
			got := DeriveUIMode(settings.Privacy, len(settings.GroupIDs)+len(settings.ContactIDs))
			if tt.mode == ModeMyPeople && len(tt.groupIDs) == 0 {
				assert.Equal(t, ModePublic, got)
				return
			}
			assert.Equal(t, tt.mode, got)
		})
	}
}

func TestResolvePrivacy(t *testing.T) {
	t.Run("private clears password and audience", func(t *testing.T) {
		settings, err := ResolvePrivacy(ModePrivate, true, "abcd", []string{"g1"}, []string{"c1"})
		require.NoError(t, err)
		assert.Equal(t, models.PrivacyPrivate, settings.Privacy)
		assert.False(t, settings.RequiresPassword)
		assert.Nil(t, settings.Password)
		assert.Empty(t, settings.GroupIDs)
		assert.Empty(t, settings.ContactIDs)
	})

	t.Run("my_people keeps selection and clears password", func(t *testing.T) {
		settings, err := ResolvePrivacy(ModeMyPeople, true, "abcd", []string{"g1"}, []string{"c1", "c2"})
		require.NoError(t, err)
		assert.Equal(t, models.PrivacyShared, settings.Privacy)
		assert.False(t, settings.RequiresPassword)
		assert.Nil(t, settings.Password)
		assert.Equal(t, []string{"g1"}, settings.GroupIDs)
		assert.Equal(t, []string{"c1", "c2"}, settings.ContactIDs)
	})

	t.Run("public with protection keeps the password verbatim", func(t *testing.T) {
		settings, err := ResolvePrivacy(ModePublic, true, " abCd ", []string{"g1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, models.PrivacyShared, settings.Privacy)
		assert.True(t, settings.RequiresPassword)
		require.NotNil(t, settings.Password)
		assert.Equal(t, " abCd ", *settings.Password)
		assert.Empty(t, settings.GroupIDs)
	})

	t.Run("public without protection stores null even when a password was typed", func(t *testing.T) {
		settings, err := ResolvePrivacy(ModePublic, false, "leftover", nil, nil)
		require.NoError(t, err)
		assert.False(t, settings.RequiresPassword)
		assert.Nil(t, settings.Password)
	})

	t.Run("protection without a password is rejected", func(t *testing.T) {
		_, err := ResolvePrivacy(ModePublic, true, "", nil, nil)
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})
}

func TestModeChoice(t *testing.T) {
	t.Run("empty choice has no effective mode", func(t *testing.T) {
		var c ModeChoice
		_, ok := c.Effective()
		assert.False(t, ok)
	})

	t.Run("derive fills the initial mode", func(t *testing.T) {
		var c ModeChoice
		c.Derive(ModeMyPeople)
		m, ok := c.Effective()
		require.True(t, ok)
		assert.Equal(t, ModeMyPeople, m)
	})

	t.Run("a pick survives later derivations", func(t *testing.T) {
		var c ModeChoice
		c.Pick(ModePublic)
		c.Derive(ModeMyPeople)
		m, ok := c.Effective()
		require.True(t, ok)
		assert.Equal(t, ModePublic, m)
	})

	t.Run("a newer pick replaces an older one", func(t *testing.T) {
		var c ModeChoice
		c.Pick(ModePublic)
		c.Pick(ModePrivate)
		m, _ := c.Effective()
		assert.Equal(t, ModePrivate, m)
	})
}
