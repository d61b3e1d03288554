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

const sharesCollection = "shares"

// firestoreShareRepository implements the ShareRepository interface using Firestore.
type firestoreShareRepository struct {
	client *firestore.Client
}

// NewFirestoreShareRepository creates a new instance of firestoreShareRepository.
func NewFirestoreShareRepository(client *firestore.Client) ShareRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ShareRepository.")
	}
	return &firestoreShareRepository{client: client}
}

// GetByListID retrieves all share edges of a list.
func (r *firestoreShareRepository) GetByListID(ctx context.Context, listID string) ([]*models.ShareEdge, error) {
	if listID == "" {
		return nil, errors.New("listID cannot be empty for GetByListID operation")
	}

	iter := r.client.Collection(sharesCollection).Where("listId", "==", listID).Documents(ctx)
	defer iter.Stop()

	var edges []*models.ShareEdge
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate share edges for list '%s': %w", listID, err)
		}

		var edge models.ShareEdge
		if err := doc.DataTo(&edge); err != nil {
			log.Printf("Error decoding share edge (ID: %s) for list '%s': %v. Skipping.", doc.Ref.ID, listID, err)
			continue
		}
		edge.ID = doc.Ref.ID
		edges = append(edges, &edge)
	}

	return edges, nil
}

// ReplaceForList atomically replaces the full edge set of a list: existing
// edges are deleted and the submitted group/contact grants written in a
// single batch, so a retry of the same selection lands on the same state.
func (r *firestoreShareRepository) ReplaceForList(ctx context.Context, listID string, groupIDs, contactIDs []string) error {
	if listID == "" {
		return errors.New("listID cannot be empty for ReplaceForList operation")
	}

	// Collect the refs of the current edge set first; the batch deletes them
	// alongside the creates.
	iter := r.client.Collection(sharesCollection).Where("listId", "==", listID).Documents(ctx)
	defer iter.Stop()

	var existing []*firestore.DocumentRef
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to collect existing share edges for list '%s': %w", listID, err)
		}
		existing = append(existing, doc.Ref)
	}

	batch := r.client.Batch()
	for _, ref := range existing {
		batch.Delete(ref)
	}
	for _, groupID := range groupIDs {
		ref := r.client.Collection(sharesCollection).NewDoc()
		batch.Create(ref, &models.ShareEdge{ListID: listID, GroupID: groupID})
	}
	for _, contactID := range contactIDs {
		ref := r.client.Collection(sharesCollection).NewDoc()
		batch.Create(ref, &models.ShareEdge{ListID: listID, ContactID: contactID})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to replace share edges for list '%s': %w", listID, err)
	}
	return nil
}
