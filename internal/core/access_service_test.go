package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"giftlist-backend-go/internal/models"
	"giftlist-backend-go/pkg/cache"
)

type gateFixture struct {
	lists    *fakeListRepo
	notifier *fakeNotifier
	activity *fakeActivity
	svc      AccessService
}

func newGateFixture() *gateFixture {
	lists := newFakeListRepo()
	notifier := &fakeNotifier{}
	activity := &fakeActivity{}
	return &gateFixture{
		lists:    lists,
		notifier: notifier,
		activity: activity,
		svc:      NewAccessService(lists, cache.NewMemoryCache(), notifier, activity, zap.NewNop(), time.Hour),
	}
}

func (f *gateFixture) addProtectedList(password string) {
	f.lists.add(&models.List{
		ID: "list-1", OwnerID: "owner-1", Title: "Ali's Birthday",
		Privacy: models.PrivacyShared, RequiresPassword: true, Password: &password,
	})
}

func TestOpenGate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown list is not found", func(t *testing.T) {
		f := newGateFixture()
		_, err := f.svc.Open(ctx, "nope")
		assert.ErrorIs(t, err, ErrListNotFound)
	})

	t.Run("a list without a password opens unlocked", func(t *testing.T) {
		f := newGateFixture()
		f.lists.add(&models.List{ID: "list-1", OwnerID: "owner-1", Title: "Open list", Privacy: models.PrivacyShared})

		session, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)
		assert.Equal(t, GateUnlocked, session.State)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("a password-protected list opens locked", func(t *testing.T) {
		f := newGateFixture()
		f.addProtectedList("abcd")

		session, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)
		assert.Equal(t, GateLocked, session.State)
		assert.Equal(t, "Ali's Birthday", session.Title)
	})

	t.Run("two opens get distinct sessions", func(t *testing.T) {
		f := newGateFixture()
		f.addProtectedList("abcd")

		s1, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)
		s2, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)
		assert.NotEqual(t, s1.Token, s2.Token)
	})
}

func TestUnlockGate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token is not found", func(t *testing.T) {
		f := newGateFixture()
		_, err := f.svc.Unlock(ctx, "bogus", "abcd")
		assert.ErrorIs(t, err, ErrGateSessionNotFound)
	})

	t.Run("comparison is exact, including case", func(t *testing.T) {
		f := newGateFixture()
		f.addProtectedList("abcd")
		session, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)

		_, err = f.svc.Unlock(ctx, session.Token, "abcD")
		assert.ErrorIs(t, err, ErrWrongPassword)
		_, err = f.svc.Unlock(ctx, session.Token, " abcd")
		assert.ErrorIs(t, err, ErrWrongPassword)

		// A failed attempt leaves the session locked and retryable.
		got, err := f.svc.Unlock(ctx, session.Token, "abcd")
		require.NoError(t, err)
		assert.Equal(t, GateUnlocked, got.State)
	})

	t.Run("unlocking twice records the unlock once", func(t *testing.T) {
		f := newGateFixture()
		f.addProtectedList("abcd")
		session, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)

		_, err = f.svc.Unlock(ctx, session.Token, "abcd")
		require.NoError(t, err)
		// The repeat submit does not even need the right password; unlocked
		// is terminal.
		got, err := f.svc.Unlock(ctx, session.Token, "wrong")
		require.NoError(t, err)
		assert.Equal(t, GateUnlocked, got.State)
		assert.Equal(t, 1, f.activity.count("GATE_UNLOCK"))
	})

	t.Run("a list that dropped its password unlocks on any submit", func(t *testing.T) {
		f := newGateFixture()
		f.addProtectedList("abcd")
		session, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)

		// The owner turned protection off after the session opened.
		require.NoError(t, f.lists.UpdatePrivacy(ctx, "list-1", models.PrivacyShared, false, nil))

		got, err := f.svc.Unlock(ctx, session.Token, "")
		require.NoError(t, err)
		assert.Equal(t, GateUnlocked, got.State)
	})

	t.Run("sessions expire with the TTL", func(t *testing.T) {
		lists := newFakeListRepo()
		pw := "abcd"
		lists.add(&models.List{ID: "list-1", OwnerID: "owner-1", Privacy: models.PrivacyShared, RequiresPassword: true, Password: &pw})
		svc := NewAccessService(lists, cache.NewMemoryCache(), &fakeNotifier{}, &fakeActivity{}, zap.NewNop(), time.Millisecond)

		session, err := svc.Open(ctx, "list-1")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		_, err = svc.Unlock(ctx, session.Token, "abcd")
		assert.ErrorIs(t, err, ErrGateSessionNotFound)
	})
}

func TestRequestAccess(t *testing.T) {
	ctx := context.Background()
	req := models.AccessRequest{Name: "Sam", Email: "sam@example.com"}

	t.Run("hands the viewer's details to the notifier and stays locked", func(t *testing.T) {
		f := newGateFixture()
		f.addProtectedList("abcd")
		session, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)

		require.NoError(t, f.svc.RequestAccess(ctx, session.Token, req))
		require.Len(t, f.notifier.notes, 1)
		note := f.notifier.notes[0]
		assert.Equal(t, "list-1", note.ListID)
		assert.Equal(t, "Ali's Birthday", note.ListTitle)
		assert.Equal(t, "owner-1", note.OwnerID)
		assert.Equal(t, "Sam", note.Name)
		assert.Equal(t, "sam@example.com", note.Email)

		// Requesting access never unlocks; the challenge still stands.
		_, err = f.svc.Unlock(ctx, session.Token, "wrong")
		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.Equal(t, 0, f.activity.count("GATE_UNLOCK"))
		assert.Equal(t, 1, f.activity.count("ACCESS_REQUESTED"))
	})

	t.Run("rejected on an unlocked session", func(t *testing.T) {
		f := newGateFixture()
		f.addProtectedList("abcd")
		session, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)
		_, err = f.svc.Unlock(ctx, session.Token, "abcd")
		require.NoError(t, err)

		err = f.svc.RequestAccess(ctx, session.Token, req)
		assert.ErrorIs(t, err, ErrGateNotLocked)
		assert.Empty(t, f.notifier.notes)
	})

	t.Run("a notifier failure surfaces to the caller", func(t *testing.T) {
		f := newGateFixture()
		f.notifier.fail = ErrNotifyUnavailable
		f.addProtectedList("abcd")
		session, err := f.svc.Open(ctx, "list-1")
		require.NoError(t, err)

		err = f.svc.RequestAccess(ctx, session.Token, req)
		assert.ErrorIs(t, err, ErrNotifyUnavailable)
	})
}
