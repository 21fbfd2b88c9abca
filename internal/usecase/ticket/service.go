package ticket

import (
	"context"
	"errors"
	"strings"

	domainTicket "flashdeals/internal/domain/ticket"
	"flashdeals/internal/events"
	"flashdeals/internal/logger"
	"flashdeals/internal/metrics"
	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCodeAttempts bounds how many codes are drawn before giving up on a collision streak
const maxCodeAttempts = 5

// Service implements support ticket use cases
type Service struct {
	ticketRepo   domainTicket.Repository
	publisher    events.Publisher
	generateCode domainTicket.CodeGenerator
}

// NewService creates a new ticket service
func NewService(ticketRepo domainTicket.Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NewNoop()
	}
	return &Service{
		ticketRepo:   ticketRepo,
		publisher:    publisher,
		generateCode: domainTicket.RandomCode,
	}
}

func (s *Service) Create(ctx context.Context, accountID uuid.UUID, req *CreateTicketRequest) (*TicketResponse, error) {
	req.Subject = utils.SanitizeString(req.Subject)
	req.Description = utils.SanitizeText(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.Priority = strings.TrimSpace(req.Priority)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	category := domainTicket.Category(req.Category)
	if !category.Valid() {
		return nil, domainTicket.ErrInvalidCategory
	}
	priority := domainTicket.PriorityMedium
	if req.Priority != "" {
		priority = domainTicket.Priority(req.Priority)
		if !priority.Valid() {
			return nil, domainTicket.ErrInvalidPriority
		}
	}

	var attachment *string
	if req.AttachmentRef != nil {
		if ref := utils.SanitizeReference(*req.AttachmentRef); ref != "" {
			attachment = &ref
		}
	}

	t := &domainTicket.Ticket{
		AccountID:     accountID,
		Subject:       req.Subject,
		Description:   req.Description,
		Category:      category,
		Priority:      priority,
		Status:        domainTicket.StatusOpen,
		AttachmentRef: attachment,
	}

	if err := s.createWithUniqueCode(ctx, t); err != nil {
		return nil, err
	}

	metrics.RecordTicketCreated()
	logger.Info("Ticket created successfully",
		zap.String("ticket_id", t.ID.String()),
		zap.String("code", t.Code),
		zap.String("account_id", accountID.String()),
		zap.String("category", string(t.Category)),
		zap.String("event", "ticket_created"),
	)

	s.publisher.Publish(ctx, events.New(events.TicketCreated, map[string]interface{}{
		"ticket_id": t.ID,
		"code":      t.Code,
		"category":  t.Category,
		"priority":  t.Priority,
	}))

	return ToTicketResponse(t), nil
}

// createWithUniqueCode lets the store's unique index arbitrate code collisions
func (s *Service) createWithUniqueCode(ctx context.Context, t *domainTicket.Ticket) error {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		t.ID = uuid.Nil
		t.Code = s.generateCode()

		err := s.ticketRepo.Create(ctx, t)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domainTicket.ErrDuplicateCode) {
			return err
		}

		logger.Warn("Ticket code collision, retrying",
			zap.String("code", t.Code),
			zap.Int("attempt", attempt),
			zap.String("event", "ticket_code_collision"),
		)
	}

	return domainTicket.ErrCodeSpaceExhausted
}

// ListMine returns the account's tickets newest first
func (s *Service) ListMine(ctx context.Context, accountID uuid.UUID) ([]*TicketResponse, error) {
	tickets, err := s.ticketRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]*TicketResponse, len(tickets))
	for i, t := range tickets {
		responses[i] = ToTicketResponse(t)
	}
	return responses, nil
}

// UpdateStatus is the staff path moving a ticket through Open, In Review, then Resolved or Closed
func (s *Service) UpdateStatus(ctx context.Context, staffID, ticketID uuid.UUID, req *UpdateStatusRequest) (*TicketResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	next := domainTicket.Status(strings.TrimSpace(req.Status))
	if !next.Valid() {
		return nil, domainTicket.ErrInvalidStatus
	}

	t, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !t.Status.CanTransitionTo(next) {
		logger.Warn("Invalid ticket status transition",
			zap.String("ticket_id", ticketID.String()),
			zap.String("from", string(t.Status)),
			zap.String("to", string(next)),
			zap.String("event", "ticket_invalid_transition"),
		)
		return nil, domainTicket.ErrInvalidTransition
	}

	previous := t.Status
	if err := s.ticketRepo.UpdateStatus(ctx, ticketID, next); err != nil {
		return nil, err
	}
	t.Status = next

	logger.Info("Ticket status changed",
		zap.String("ticket_id", ticketID.String()),
		zap.String("staff_id", staffID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
		zap.String("event", "ticket_status_changed"),
	)

	s.publisher.Publish(ctx, events.New(events.TicketStatusChanged, map[string]interface{}{
		"ticket_id": ticketID,
		"code":      t.Code,
		"from":      previous,
		"to":        next,
	}))

	return ToTicketResponse(t), nil
}
