package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"giftlist-backend-go/internal/models"
)

const (
	groupsCollection   = "groups"
	contactsCollection = "contacts"
)

// firestoreAudienceRepository implements the AudienceRepository interface
// using Firestore.
type firestoreAudienceRepository struct {
	client *firestore.Client
}

// NewFirestoreAudienceRepository creates a new instance of firestoreAudienceRepository.
func NewFirestoreAudienceRepository(client *firestore.Client) AudienceRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AudienceRepository.")
	}
	return &firestoreAudienceRepository{client: client}
}

// GetGroups retrieves all groups owned by a user, newest first.
func (r *firestoreAudienceRepository) GetGroups(ctx context.Context, ownerID string) ([]*models.Group, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for GetGroups operation")
	}

	iter := r.client.Collection(groupsCollection).
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var groups []*models.Group
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate groups for owner '%s': %w", ownerID, err)
		}

		var group models.Group
		if err := doc.DataTo(&group); err != nil {
			log.Printf("Error decoding group data (ID: %s) for owner '%s': %v. Skipping.", doc.Ref.ID, ownerID, err)
			continue
		}
		group.ID = doc.Ref.ID
		groups = append(groups, &group)
	}

	return groups, nil
}

// GetContacts retrieves all contacts owned by a user, newest first.
func (r *firestoreAudienceRepository) GetContacts(ctx context.Context, ownerID string) ([]*models.Contact, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for GetContacts operation")
	}

	iter := r.client.Collection(contactsCollection).
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var contacts []*models.Contact
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate contacts for owner '%s': %w", ownerID, err)
		}

		var contact models.Contact
		if err := doc.DataTo(&contact); err != nil {
			log.Printf("Error decoding contact data (ID: %s) for owner '%s': %v. Skipping.", doc.Ref.ID, ownerID, err)
			continue
		}
		contact.ID = doc.Ref.ID
		contacts = append(contacts, &contact)
	}

	return contacts, nil
}

// SeedSampleData writes the starter groups and contacts shown to an owner
// whose audience is still empty, in one batch.
func (r *firestoreAudienceRepository) SeedSampleData(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return errors.New("ownerID cannot be empty for SeedSampleData operation")
	}

	batch := r.client.Batch()
	for _, name := range []string{"Family", "Close friends"} {
		ref := r.client.Collection(groupsCollection).NewDoc()
		batch.Create(ref, &models.Group{OwnerID: ownerID, Name: name})
	}
	sampleContacts := []models.Contact{
		{OwnerID: ownerID, Name: "Sam Example", Email: "sam@example.com"},
		{OwnerID: ownerID, Name: "Alex Example", Email: "alex@example.com"},
	}
	for i := range sampleContacts {
		ref := r.client.Collection(contactsCollection).NewDoc()
		batch.Create(ref, &sampleContacts[i])
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to seed sample audience for owner '%s': %w", ownerID, err)
	}
	return nil
}
