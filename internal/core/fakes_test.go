package core

import (
	"context"
	"fmt"
	"sync"

	"giftlist-backend-go/internal/db"
	"giftlist-backend-go/internal/models"
)

// In-memory repository fakes backing the service tests. They honor the same
// contracts as the Firestore implementations: db.ErrNotFound on missing
// documents, full-replacement share writes, value copies on reads.

type fakeListRepo struct {
	mu          sync.Mutex
	lists       map[string]*models.List
	nextID      int
	createCalls int
	failCreate  error
	failPrivacy error
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{lists: make(map[string]*models.List)}
}

func (f *fakeListRepo) add(list *models.List) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *list
	f.lists[list.ID] = &cp
}

func (f *fakeListRepo) Create(_ context.Context, list *models.List) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.failCreate != nil {
		return "", f.failCreate
	}
	f.nextID++
	id := fmt.Sprintf("list-%d", f.nextID)
	cp := *list
	cp.ID = id
	f.lists[id] = &cp
	return id, nil
}

func (f *fakeListRepo) GetByID(_ context.Context, listID string) (*models.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.lists[listID]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *stored
	return &cp, nil
}

func (f *fakeListRepo) UpdateDetails(_ context.Context, list *models.List) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.lists[list.ID]
	if !ok {
		return db.ErrNotFound
	}
	stored.Title = list.Title
	stored.Note = list.Note
	stored.EventDate = list.EventDate
	stored.ShippingAddress = list.ShippingAddress
	stored.Occasion = list.Occasion
	stored.CoverPhotoURL = list.CoverPhotoURL
	stored.CoverPhotoPath = list.CoverPhotoPath
	return nil
}

func (f *fakeListRepo) UpdatePrivacy(_ context.Context, listID string, privacy models.Privacy, requiresPassword bool, password *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPrivacy != nil {
		return f.failPrivacy
	}
	stored, ok := f.lists[listID]
	if !ok {
		return db.ErrNotFound
	}
	stored.Privacy = privacy
	stored.RequiresPassword = requiresPassword
	stored.Password = password
	return nil
}

type fakeShareRepo struct {
	mu           sync.Mutex
	edges        map[string][]*models.ShareEdge
	nextID       int
	replaceCalls int
	failReplace  error
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{edges: make(map[string][]*models.ShareEdge)}
}

func (f *fakeShareRepo) GetByListID(_ context.Context, listID string) ([]*models.ShareEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.ShareEdge, 0, len(f.edges[listID]))
	for _, e := range f.edges[listID] {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeShareRepo) ReplaceForList(_ context.Context, listID string, groupIDs, contactIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceCalls++
	if f.failReplace != nil {
		return f.failReplace
	}
	var edges []*models.ShareEdge
	for _, id := range groupIDs {
		f.nextID++
		edges = append(edges, &models.ShareEdge{ID: fmt.Sprintf("edge-%d", f.nextID), ListID: listID, GroupID: id})
	}
	for _, id := range contactIDs {
		f.nextID++
		edges = append(edges, &models.ShareEdge{ID: fmt.Sprintf("edge-%d", f.nextID), ListID: listID, ContactID: id})
	}
	f.edges[listID] = edges
	return nil
}

type fakeAudienceRepo struct {
	mu        sync.Mutex
	groups    map[string][]*models.Group
	contacts  map[string][]*models.Contact
	seedCalls int
	failSeed  error
}

func newFakeAudienceRepo() *fakeAudienceRepo {
	return &fakeAudienceRepo{
		groups:   make(map[string][]*models.Group),
		contacts: make(map[string][]*models.Contact),
	}
}

func (f *fakeAudienceRepo) GetGroups(_ context.Context, ownerID string) ([]*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.groups[ownerID], nil
}

func (f *fakeAudienceRepo) GetContacts(_ context.Context, ownerID string) ([]*models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contacts[ownerID], nil
}

func (f *fakeAudienceRepo) SeedSampleData(_ context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seedCalls++
	if f.failSeed != nil {
		return f.failSeed
	}
	f.groups[ownerID] = []*models.Group{
		{ID: "seed-g1", OwnerID: ownerID, Name: "Family"},
		{ID: "seed-g2", OwnerID: ownerID, Name: "Close friends"},
	}
	f.contacts[ownerID] = []*models.Contact{
		{ID: "seed-c1", OwnerID: ownerID, Name: "Sam Example", Email: "sam@example.com"},
		{ID: "seed-c2", OwnerID: ownerID, Name: "Alex Example", Email: "alex@example.com"},
	}
	return nil
}

// fakeActivity implements ActivityService and counts entries per action.
type fakeActivity struct {
	mu      sync.Mutex
	entries []models.Activity
}

func (f *fakeActivity) Record(_ context.Context, entry models.Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

func (f *fakeActivity) count(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []AccessRequestNote
	fail  error
}

func (f *fakeNotifier) AccessRequested(_ context.Context, note AccessRequestNote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.notes = append(f.notes, note)
	return nil
}
