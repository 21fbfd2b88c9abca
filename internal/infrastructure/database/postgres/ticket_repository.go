package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainTicket "flashdeals/internal/domain/ticket"
	"flashdeals/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketRepository implements ticket.Repository interface
type TicketRepository struct {
	db *DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *DB) domainTicket.Repository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, t *domainTicket.Ticket) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	dbModel := toTicketModel(t)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err) {
			return domainTicket.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	t.ID = dbModel.ID
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uuid.UUID) (*domainTicket.Ticket, error) {
	var dbModel models.TicketModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", ticketID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainTicket.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return toTicketEntity(&dbModel), nil
}

func (r *TicketRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domainTicket.Ticket, error) {
	var dbModels []models.TicketModel
	err := r.db.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*domainTicket.Ticket, len(dbModels))
	for i := range dbModels {
		tickets[i] = toTicketEntity(&dbModels[i])
	}
	return tickets, nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, ticketID uuid.UUID, status domainTicket.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.TicketModel{}).
		Where("id = ?", ticketID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainTicket.ErrTicketNotFound
	}

	return nil
}

func toTicketModel(t *domainTicket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:            t.ID,
		AccountID:     t.AccountID,
		Code:          t.Code,
		Subject:       t.Subject,
		Description:   t.Description,
		Category:      string(t.Category),
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		AttachmentRef: t.AttachmentRef,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toTicketEntity(m *models.TicketModel) *domainTicket.Ticket {
	return &domainTicket.Ticket{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Code:          m.Code,
		Subject:       m.Subject,
		Description:   m.Description,
		Category:      domainTicket.Category(m.Category),
		Priority:      domainTicket.Priority(m.Priority),
		Status:        domainTicket.Status(m.Status),
		AttachmentRef: m.AttachmentRef,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
