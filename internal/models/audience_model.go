package models

import "time"

// ShareEdge grants one group or one contact visibility of one list.
// Exactly one of GroupID / ContactID is set. The full edge set of a list is
// replaced wholesale on every save; there is no incremental add/remove.
type ShareEdge struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	ListID    string    `json:"listId" firestore:"listId"`
	GroupID   string    `json:"groupId,omitempty" firestore:"groupId,omitempty"`
	ContactID string    `json:"contactId,omitempty" firestore:"contactId,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Group is a named circle of people a list can be shared with.
type Group struct {
	ID        string    `json:"id" firestore:"-"`
	OwnerID   string    `json:"ownerId" firestore:"ownerId"`
	Name      string    `json:"name" firestore:"name"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Contact is a single person a list can be shared with.
type Contact struct {
	ID        string    `json:"id" firestore:"-"`
	OwnerID   string    `json:"ownerId" firestore:"ownerId"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email,omitempty" firestore:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
