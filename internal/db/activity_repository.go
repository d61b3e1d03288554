package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"giftlist-backend-go/internal/models"
)

const activityCollection = "activity"

// firestoreActivityRepository implements the ActivityRepository interface
// using Firestore.
type firestoreActivityRepository struct {
	client *firestore.Client
}

// NewFirestoreActivityRepository creates a new instance of firestoreActivityRepository.
func NewFirestoreActivityRepository(client *firestore.Client) ActivityRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ActivityRepository.")
	}
	return &firestoreActivityRepository{client: client}
}

// Create adds an activity entry with an auto-generated ID. Timestamp is
// handled by the serverTimestamp tag on the model.
func (r *firestoreActivityRepository) Create(ctx context.Context, entry models.Activity) error {
	docRef := r.client.Collection(activityCollection).NewDoc()
	if _, err := docRef.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}
	return nil
}
