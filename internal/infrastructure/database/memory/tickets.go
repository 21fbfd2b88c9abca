package memory

import (
	"context"
	"sort"
	"time"

	"flashdeals/internal/domain/ticket"

	"github.com/google/uuid"
)

type ticketRepository struct {
	store *Store
}

func (r *ticketRepository) Create(_ context.Context, t *ticket.Ticket) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.ticketCodes[t.Code]; taken {
		return ticket.ErrDuplicateCode
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	stored := *t
	stored.AttachmentRef = cloneString(t.AttachmentRef)
	s.tickets[t.ID] = storedTicket{Ticket: stored, seq: s.nextSeqLocked()}
	s.ticketCodes[t.Code] = t.ID
	return nil
}

func (r *ticketRepository) GetByID(_ context.Context, ticketID uuid.UUID) (*ticket.Ticket, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.tickets[ticketID]
	if !ok {
		return nil, ticket.ErrTicketNotFound
	}
	c := stored.Ticket
	c.AttachmentRef = cloneString(c.AttachmentRef)
	return &c, nil
}

func (r *ticketRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*ticket.Ticket, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned []storedTicket
	for _, stored := range s.tickets {
		if stored.AccountID == accountID {
			owned = append(owned, stored)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].seq > owned[j].seq
	})

	out := make([]*ticket.Ticket, len(owned))
	for i := range owned {
		c := owned[i].Ticket
		c.AttachmentRef = cloneString(c.AttachmentRef)
		out[i] = &c
	}
	return out, nil
}

func (r *ticketRepository) UpdateStatus(_ context.Context, ticketID uuid.UUID, status ticket.Status) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tickets[ticketID]
	if !ok {
		return ticket.ErrTicketNotFound
	}
	stored.Status = status
	stored.UpdatedAt = time.Now()
	s.tickets[ticketID] = stored
	return nil
}
