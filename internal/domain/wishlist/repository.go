package wishlist

import (
	"context"

	"flashdeals/internal/domain/offer"

	"github.com/google/uuid"
)

// Repository defines the interface for wishlist persistence
type Repository interface {
	// Toggle removes the entry when present, otherwise inserts it, atomically per pair.
	// It returns whether the pair is wishlisted afterwards.
	Toggle(ctx context.Context, accountID, offerID uuid.UUID) (bool, error)
	OfferIDs(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
	// ListOffers returns saved offers newest entry first, skipping entries whose offer is gone.
	ListOffers(ctx context.Context, accountID uuid.UUID) ([]*offer.Offer, error)
}
