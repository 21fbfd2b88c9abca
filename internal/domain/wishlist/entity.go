package wishlist

import (
	"time"

	"github.com/google/uuid"
)

// Entry links an account to an offer it saved. (AccountID, OfferID) is unique.
type Entry struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	OfferID   uuid.UUID
	CreatedAt time.Time
}
