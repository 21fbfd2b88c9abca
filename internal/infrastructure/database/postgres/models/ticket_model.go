package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketModel represents the database model for Ticket
type TicketModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Code          string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	Subject       string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text;not null"`
	Category      string    `gorm:"type:varchar(50);not null"`
	Priority      string    `gorm:"type:varchar(20);not null;default:'Medium'"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Open'"`
	AttachmentRef *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (TicketModel) TableName() string {
	return "tickets"
}
