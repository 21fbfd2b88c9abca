package memory

import (
	"context"
	"sort"
	"time"

	"flashdeals/internal/domain/offer"

	"github.com/google/uuid"
)

type offerRepository struct {
	store *Store
}

func (r *offerRepository) Create(_ context.Context, o *offer.Offer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = offer.StatusActive
	}

	stored := *o
	stored.Vendor = nil
	s.offers[o.ID] = storedOffer{Offer: stored, seq: s.nextSeqLocked()}
	return nil
}

func (r *offerRepository) GetByID(_ context.Context, offerID uuid.UUID) (*offer.Offer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.offers[offerID]
	if !ok {
		return nil, offer.ErrOfferNotFound
	}
	return s.joinVendorLocked(stored.Offer), nil
}

func (r *offerRepository) ListLive(_ context.Context, now time.Time) ([]*offer.Offer, error) {
	return r.listLive(now, func(*offer.Offer) bool { return true }), nil
}

func (r *offerRepository) ListLiveByVendor(_ context.Context, vendorID uuid.UUID, now time.Time) ([]*offer.Offer, error) {
	return r.listLive(now, func(o *offer.Offer) bool { return o.VendorID == vendorID }), nil
}

func (r *offerRepository) listLive(now time.Time, keep func(*offer.Offer) bool) []*offer.Offer {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	live := make([]storedOffer, 0, len(s.offers))
	for _, stored := range s.offers {
		if offer.IsLive(&stored.Offer, now) && keep(&stored.Offer) {
			live = append(live, stored)
		}
	}
	sortNewestFirst(live)

	out := make([]*offer.Offer, len(live))
	for i := range live {
		out[i] = s.joinVendorLocked(live[i].Offer)
	}
	return out
}

func (r *offerRepository) Update(_ context.Context, o *offer.Offer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.offers[o.ID]
	if !ok {
		return offer.ErrOfferNotFound
	}

	o.UpdatedAt = time.Now()
	updated := *o
	updated.Vendor = nil
	updated.VendorID = stored.VendorID
	updated.CreatedAt = stored.CreatedAt
	s.offers[o.ID] = storedOffer{Offer: updated, seq: stored.seq}
	return nil
}

func (r *offerRepository) Delete(_ context.Context, offerID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offers[offerID]; !ok {
		return offer.ErrOfferNotFound
	}
	delete(s.offers, offerID)
	for key := range s.wishlist {
		if key.offerID == offerID {
			delete(s.wishlist, key)
		}
	}
	return nil
}

func (s *Store) joinVendorLocked(o offer.Offer) *offer.Offer {
	if vendor, ok := s.accounts[o.VendorID]; ok {
		summary := &offer.VendorSummary{
			ID:           vendor.ID,
			Name:         vendor.Name,
			StoreName:    cloneString(vendor.Vendor.StoreName),
			StoreAddress: cloneString(vendor.Vendor.StoreAddress),
			StoreLogoRef: cloneString(vendor.Vendor.StoreLogoRef),
			ProfileImage: cloneString(vendor.ProfileImage),
		}
		if vendor.Vendor.Geo != nil {
			summary.Latitude = cloneFloat(&vendor.Vendor.Geo.Latitude)
			summary.Longitude = cloneFloat(&vendor.Vendor.Geo.Longitude)
		}
		o.Vendor = summary
	}
	return &o
}

func sortNewestFirst(offers []storedOffer) {
	sort.Slice(offers, func(i, j int) bool {
		if !offers[i].CreatedAt.Equal(offers[j].CreatedAt) {
			return offers[i].CreatedAt.After(offers[j].CreatedAt)
		}
		return offers[i].seq > offers[j].seq
	})
}
