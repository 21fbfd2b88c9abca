package offer

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for offer persistence.
// Listing methods return live offers only (EndDate >= now), newest first, vendor joined.
type Repository interface {
	Create(ctx context.Context, offer *Offer) error
	GetByID(ctx context.Context, offerID uuid.UUID) (*Offer, error)
	ListLive(ctx context.Context, now time.Time) ([]*Offer, error)
	ListLiveByVendor(ctx context.Context, vendorID uuid.UUID, now time.Time) ([]*Offer, error)
	Update(ctx context.Context, offer *Offer) error
	// Delete removes the offer together with every wishlist entry that references it.
	Delete(ctx context.Context, offerID uuid.UUID) error
}
