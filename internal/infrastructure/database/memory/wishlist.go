package memory

import (
	"context"
	"sort"
	"time"

	"flashdeals/internal/domain/offer"
	"flashdeals/internal/domain/wishlist"

	"github.com/google/uuid"
)

type wishlistRepository struct {
	store *Store
}

func (r *wishlistRepository) Toggle(_ context.Context, accountID, offerID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := wishlistKey{accountID: accountID, offerID: offerID}
	if _, exists := s.wishlist[key]; exists {
		delete(s.wishlist, key)
		return false, nil
	}
	if _, ok := s.offers[offerID]; !ok {
		return false, offer.ErrOfferNotFound
	}

	s.wishlist[key] = storedEntry{
		Entry: wishlist.Entry{
			ID:        uuid.New(),
			AccountID: accountID,
			OfferID:   offerID,
			CreatedAt: time.Now(),
		},
		seq: s.nextSeqLocked(),
	}
	return true, nil
}

func (r *wishlistRepository) OfferIDs(_ context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entriesLocked(accountID)
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.OfferID
	}
	return ids, nil
}

func (r *wishlistRepository) ListOffers(_ context.Context, accountID uuid.UUID) ([]*offer.Offer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entriesLocked(accountID)
	offers := make([]*offer.Offer, 0, len(entries))
	for _, e := range entries {
		stored, ok := s.offers[e.OfferID]
		if !ok {
			continue
		}
		offers = append(offers, s.joinVendorLocked(stored.Offer))
	}
	return offers, nil
}

func (s *Store) entriesLocked(accountID uuid.UUID) []storedEntry {
	var entries []storedEntry
	for key, e := range s.wishlist {
		if key.accountID == accountID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq > entries[j].seq
	})
	return entries
}
