package ticket

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for ticket persistence
type Repository interface {
	// Create fails with ErrDuplicateCode when ticket.Code is taken.
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, ticketID uuid.UUID) (*Ticket, error)
	// ListByAccount returns tickets newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Ticket, error)
	UpdateStatus(ctx context.Context, ticketID uuid.UUID, status Status) error
}
