// Package memory is a thread-safe in-process persistence layer implementing the
// domain repository interfaces. It backs DB_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sync"

	"flashdeals/internal/domain/account"
	"flashdeals/internal/domain/offer"
	"flashdeals/internal/domain/ticket"
	"flashdeals/internal/domain/wishlist"

	"github.com/google/uuid"
)

type wishlistKey struct {
	accountID uuid.UUID
	offerID   uuid.UUID
}

type storedOffer struct {
	offer.Offer
	seq int64
}

type storedEntry struct {
	wishlist.Entry
	seq int64
}

type storedTicket struct {
	ticket.Ticket
	seq int64
}

// Store holds every aggregate behind one lock
type Store struct {
	mu  sync.RWMutex
	seq int64

	accounts    map[uuid.UUID]account.Account
	mobiles     map[string]uuid.UUID
	sessions    map[uuid.UUID][]account.Session
	offers      map[uuid.UUID]storedOffer
	wishlist    map[wishlistKey]storedEntry
	tickets     map[uuid.UUID]storedTicket
	ticketCodes map[string]uuid.UUID
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[uuid.UUID]account.Account),
		mobiles:     make(map[string]uuid.UUID),
		sessions:    make(map[uuid.UUID][]account.Session),
		offers:      make(map[uuid.UUID]storedOffer),
		wishlist:    make(map[wishlistKey]storedEntry),
		tickets:     make(map[uuid.UUID]storedTicket),
		ticketCodes: make(map[string]uuid.UUID),
	}
}

func (s *Store) Health(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Accounts() account.Repository {
	return &accountRepository{store: s}
}

func (s *Store) Sessions() account.SessionRepository {
	return &sessionRepository{store: s}
}

func (s *Store) Offers() offer.Repository {
	return &offerRepository{store: s}
}

func (s *Store) Wishlist() wishlist.Repository {
	return &wishlistRepository{store: s}
}

func (s *Store) Tickets() ticket.Repository {
	return &ticketRepository{store: s}
}

func (s *Store) nextSeqLocked() int64 {
	s.seq++
	return s.seq
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
