package models

import "time"

// Activity records a list lifecycle event. Writing activity is best-effort:
// a failed write never fails the action that produced it.
type Activity struct {
	ID        string                 `json:"id" firestore:"-"`
	Timestamp time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	ActorID   string                 `json:"actorId,omitempty" firestore:"actorId,omitempty"` // empty for anonymous viewers at the gate
	Action    string                 `json:"action" firestore:"action"`                       // e.g. "LIST_CREATE", "PRIVACY_UPDATE", "GATE_UNLOCK"
	ListID    string                 `json:"listId,omitempty" firestore:"listId,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
