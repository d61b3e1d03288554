package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"giftlist-backend-go/internal/models"
)

const listsCollection = "lists"

// firestoreListRepository implements the ListRepository interface using Firestore.
type firestoreListRepository struct {
	client *firestore.Client
}

// NewFirestoreListRepository creates a new instance of firestoreListRepository.
func NewFirestoreListRepository(client *firestore.Client) ListRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ListRepository.")
	}
	return &firestoreListRepository{client: client}
}

// Create adds a new list document to Firestore with an auto-generated ID.
// CreatedAt and UpdatedAt are handled by serverTimestamp tags on the model.
func (r *firestoreListRepository) Create(ctx context.Context, list *models.List) (string, error) {
	docRef := r.client.Collection(listsCollection).NewDoc()
	list.ID = docRef.ID // Set the ID in the model before saving

	_, err := docRef.Create(ctx, list)
	if err != nil {
		return "", fmt.Errorf("failed to create list: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a list document from Firestore by its ID.
func (r *firestoreListRepository) GetByID(ctx context.Context, listID string) (*models.List, error) {
	if listID == "" {
		return nil, errors.New("listID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(listsCollection).Doc(listID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("list with ID '%s' not found: %w", listID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get list with ID '%s': %w", listID, err)
	}

	var list models.List
	if err := docSnap.DataTo(&list); err != nil {
		return nil, fmt.Errorf("failed to decode list data for ID '%s': %w", listID, err)
	}
	list.ID = docSnap.Ref.ID // Ensure ID is populated

	return &list, nil
}

// UpdateDetails rewrites the descriptive field set of the detail step. Every
// detail field is written, so re-submitting the same step is idempotent and
// cleared fields do not linger.
func (r *firestoreListRepository) UpdateDetails(ctx context.Context, list *models.List) error {
	if list.ID == "" {
		return errors.New("list ID cannot be empty for UpdateDetails operation")
	}
	updates := []firestore.Update{
		{Path: "title", Value: list.Title},
		{Path: "note", Value: list.Note},
		{Path: "eventDate", Value: list.EventDate},
		{Path: "shippingAddress", Value: list.ShippingAddress},
		{Path: "occasion", Value: list.Occasion},
		{Path: "coverPhotoUrl", Value: list.CoverPhotoURL},
		{Path: "coverPhotoPath", Value: list.CoverPhotoPath},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	_, err := r.client.Collection(listsCollection).Doc(list.ID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("list with ID '%s' not found for update: %w", list.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update details of list '%s': %w", list.ID, err)
	}
	return nil
}

// UpdatePrivacy rewrites the visibility fields. A nil password stores null,
// clearing any previously persisted value.
func (r *firestoreListRepository) UpdatePrivacy(ctx context.Context, listID string, privacy models.Privacy, requiresPassword bool, password *string) error {
	if listID == "" {
		return errors.New("listID cannot be empty for UpdatePrivacy operation")
	}
	updates := []firestore.Update{
		{Path: "privacy", Value: privacy},
		{Path: "requiresPassword", Value: requiresPassword},
		{Path: "password", Value: password},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	_, err := r.client.Collection(listsCollection).Doc(listID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("list with ID '%s' not found for privacy update: %w", listID, ErrNotFound)
		}
		return fmt.Errorf("failed to update privacy of list '%s': %w", listID, err)
	}
	return nil
}
