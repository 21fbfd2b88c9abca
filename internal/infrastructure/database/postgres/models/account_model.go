package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel represents the database model for Account
type AccountModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Mobile         string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name           string    `gorm:"type:varchar(255);not null"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(20);not null;default:'customer'"`
	ProfileImage   *string   `gorm:"type:text"`
	IsVerified     bool      `gorm:"default:false;not null"`
	StoreName      *string   `gorm:"type:varchar(255)"`
	StoreAddress   *string   `gorm:"type:text"`
	StoreLogoRef   *string   `gorm:"type:text"`
	Latitude       *float64  `gorm:"type:double precision"`
	Longitude      *float64  `gorm:"type:double precision"`
	IDType         *string   `gorm:"column:id_type;type:varchar(50)"`
	IDNumber       *string   `gorm:"column:id_number;type:varchar(100)"`
	IDDocumentRef  *string   `gorm:"column:id_document_ref;type:text"`
	ApprovalStatus string    `gorm:"type:varchar(20);not null;default:''"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

// SessionModel represents one login of an account. Seq orders sessions by insertion.
type SessionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Seq          int64     `gorm:"autoIncrement;not null"`
	DeviceInfo   string    `gorm:"type:varchar(255);not null"`
	OS           string    `gorm:"column:os;type:varchar(100);not null"`
	LastLogin    time.Time `gorm:"not null"`
	LastActiveAt time.Time `gorm:"not null;index"`
	IsActive     bool      `gorm:"default:true;not null"`
}

func (SessionModel) TableName() string {
	return "account_sessions"
}
