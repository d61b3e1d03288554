package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"giftlist-backend-go/internal/models"
)

func TestLoadCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("existing audience is returned untouched", func(t *testing.T) {
		repo := newFakeAudienceRepo()
		repo.groups["owner-1"] = []*models.Group{{ID: "g1", OwnerID: "owner-1", Name: "Family"}}
		svc := NewAudienceService(repo, newFakeShareRepo(), zap.NewNop())

		got, err := svc.LoadCandidates(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, got.Groups, 1)
		assert.Equal(t, 0, repo.seedCalls)
	})

	t.Run("an empty audience gets sample entries seeded", func(t *testing.T) {
		repo := newFakeAudienceRepo()
		svc := NewAudienceService(repo, newFakeShareRepo(), zap.NewNop())

		got, err := svc.LoadCandidates(ctx, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, 1, repo.seedCalls)
		assert.NotEmpty(t, got.Groups)
		assert.NotEmpty(t, got.Contacts)
	})

	t.Run("a failed seeding leaves the picker empty without failing the load", func(t *testing.T) {
		repo := newFakeAudienceRepo()
		repo.failSeed = errors.New("quota exceeded")
		svc := NewAudienceService(repo, newFakeShareRepo(), zap.NewNop())

		got, err := svc.LoadCandidates(ctx, "owner-1")
		require.NoError(t, err)
		assert.Empty(t, got.Groups)
		assert.Empty(t, got.Contacts)
	})
}

func TestCommitRequiresListID(t *testing.T) {
	svc := NewAudienceService(newFakeAudienceRepo(), newFakeShareRepo(), zap.NewNop())
	err := svc.Commit(context.Background(), "", []string{"g1"}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFilterCandidates(t *testing.T) {
	groups := []*models.Group{
		{ID: "g1", Name: "Family"},
		{ID: "g2", Name: "Anna's book club"},
	}
	contacts := []*models.Contact{
		{ID: "c1", Name: "Anna", Email: "anna@example.com"},
		{ID: "c2", Name: "Johanna", Email: "jo@example.com"},
		{ID: "c3", Name: "Bob", Email: "bob@example.com"},
	}

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Len(t, FilterGroups(groups, ""), 2)
		assert.Len(t, FilterContacts(contacts, ""), 3)
	})

	t.Run("matching is a case-insensitive substring", func(t *testing.T) {
		got := FilterContacts(contacts, "AN")
		require.Len(t, got, 2)
		assert.Equal(t, "Anna", got[0].Name)
		assert.Equal(t, "Johanna", got[1].Name)

		assert.Len(t, FilterGroups(groups, "fam"), 1)
	})

	t.Run("contacts also match on email", func(t *testing.T) {
		got := FilterContacts(contacts, "jo@")
		require.Len(t, got, 1)
		assert.Equal(t, "Johanna", got[0].Name)
	})

	t.Run("no match yields an empty result", func(t *testing.T) {
		assert.Empty(t, FilterGroups(groups, "xyz"))
		assert.Empty(t, FilterContacts(contacts, "xyz"))
	})
}

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("g1", KindGroup)
	sel.Toggle("c1", KindContact)
	assert.True(t, sel.Has("g1", KindGroup))
	assert.True(t, sel.Has("c1", KindContact))

	// Toggling again restores the original selection.
	sel.Toggle("g1", KindGroup)
	assert.False(t, sel.Has("g1", KindGroup))
	assert.Equal(t, []string{"c1"}, sel.ContactIDs())
	assert.Empty(t, sel.GroupIDs())

	// Group and contact ids live in separate namespaces.
	sel.Toggle("x1", KindGroup)
	sel.Toggle("x1", KindContact)
	assert.True(t, sel.Has("x1", KindGroup))
	assert.True(t, sel.Has("x1", KindContact))
}

func TestSelectionFromEdgesCommitIsANoOp(t *testing.T) {
	ctx := context.Background()
	shares := newFakeShareRepo()
	svc := NewAudienceService(newFakeAudienceRepo(), shares, zap.NewNop())

	require.NoError(t, svc.Commit(ctx, "list-1", []string{"g1"}, []string{"c2"}))
	edges, err := shares.GetByListID(ctx, "list-1")
	require.NoError(t, err)

	// Open the picker on the stored edges, change nothing, commit again.
	sel := SelectionFromEdges(edges)
	require.NoError(t, svc.Commit(ctx, "list-1", sel.GroupIDs(), sel.ContactIDs()))

	after, err := shares.GetByListID(ctx, "list-1")
	require.NoError(t, err)
	require.Len(t, after, 2)
	var groupIDs, contactIDs []string
	for _, e := range after {
		if e.GroupID != "" {
			groupIDs = append(groupIDs, e.GroupID)
		}
		if e.ContactID != "" {
			contactIDs = append(contactIDs, e.ContactID)
		}
	}
	assert.Equal(t, []string{"g1"}, groupIDs)
	assert.Equal(t, []string{"c2"}, contactIDs)
}
