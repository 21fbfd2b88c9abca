package ticket

import (
	"time"

	domainTicket "flashdeals/internal/domain/ticket"

	"github.com/google/uuid"
)

type CreateTicketRequest struct {
	Subject       string  `json:"subject" validate:"required,max=255"`
	Description   string  `json:"description" validate:"required,max=5000"`
	Category      string  `json:"category" validate:"required"`
	Priority      string  `json:"priority"`
	AttachmentRef *string `json:"attachment_ref" validate:"omitempty,max=1024"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type TicketResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Subject       string    `json:"subject"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	AttachmentRef *string   `json:"attachment_ref"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToTicketResponse(t *domainTicket.Ticket) *TicketResponse {
	if t == nil {
		return nil
	}
	return &TicketResponse{
		ID:            t.ID,
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
