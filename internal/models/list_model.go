package models

import "time"

// Privacy is the stored, two-valued visibility of a list.
// The three-valued mode shown to the user is never persisted; it is derived
// from Privacy plus the list's share edges (see core.DeriveUIMode).
type Privacy string

const (
	PrivacyPrivate Privacy = "private"
	PrivacyShared  Privacy = "shared"
)

// Occasion tags a list with the event it is for. Empty means unset.
type Occasion string

const (
	OccasionBirthday     Occasion = "birthday"
	OccasionWedding      Occasion = "wedding"
	OccasionBabyShower   Occasion = "baby_shower"
	OccasionGraduation   Occasion = "graduation"
	OccasionHolidays     Occasion = "holidays"
	OccasionHousewarming Occasion = "housewarming"
	OccasionOther        Occasion = "other"
)

// Valid reports whether o is one of the known occasion tags. The empty
// occasion is valid (the field is optional).
func (o Occasion) Valid() bool {
	switch o {
	case "", OccasionBirthday, OccasionWedding, OccasionBabyShower,
		OccasionGraduation, OccasionHolidays, OccasionHousewarming, OccasionOther:
		return true
	}
	return false
}

// List represents a gift-occasion list.
type List struct {
	ID      string `json:"id" firestore:"-"`            // Document ID, auto-generated
	OwnerID string `json:"ownerId" firestore:"ownerId"` // Firebase Auth UID of the owner; immutable after creation

	Title           string     `json:"title" firestore:"title"`
	Note            string     `json:"note,omitempty" firestore:"note,omitempty"`
	EventDate       *time.Time `json:"eventDate,omitempty" firestore:"eventDate,omitempty"`
	ShippingAddress string     `json:"shippingAddress,omitempty" firestore:"shippingAddress,omitempty"`
	Occasion        Occasion   `json:"occasion,omitempty" firestore:"occasion,omitempty"`

	// CoverPhotoURL is the public display URL; CoverPhotoPath is the opaque
	// storage handle the upload path returned alongside it.
	CoverPhotoURL  string `json:"coverPhotoUrl,omitempty" firestore:"coverPhotoUrl,omitempty"`
	CoverPhotoPath string `json:"coverPhotoPath,omitempty" firestore:"coverPhotoPath,omitempty"`

	Privacy          Privacy `json:"privacy" firestore:"privacy"`
	RequiresPassword bool    `json:"requiresPassword" firestore:"requiresPassword"`
	// Password is the plaintext gate password for public lists, nil when no
	// password is required. Never serialized to API responses.
	Password *string `json:"-" firestore:"password"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
