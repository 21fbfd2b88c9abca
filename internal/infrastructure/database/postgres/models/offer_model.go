package models

import (
	"time"

	"github.com/google/uuid"
)

// OfferModel represents the database model for Offer
type OfferModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VendorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(100);not null"`
	ImageRef    string    `gorm:"type:text;not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null;index"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active'"`
	IsTrending  bool      `gorm:"default:false;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`

	Vendor *AccountModel `gorm:"foreignKey:VendorID"`
}

func (OfferModel) TableName() string {
	return "offers"
}

// WishlistEntryModel links an account to a saved offer
type WishlistEntryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_account_offer"`
	OfferID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_account_offer"`
	CreatedAt time.Time `gorm:"not null"`

	Offer *OfferModel `gorm:"foreignKey:OfferID"`
}

func (WishlistEntryModel) TableName() string {
	return "wishlist_entries"
}
