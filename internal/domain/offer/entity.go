package offer

import (
	"time"

	"github.com/google/uuid"
)

// Status is the display label of an offer; visibility is governed by EndDate, not by Status
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Offer is a time-boxed deal published by a vendor
type Offer struct {
	ID          uuid.UUID
	VendorID    uuid.UUID
	Title       string
	Description string
	Category    string
	ImageRef    string
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
	IsTrending  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Vendor *VendorSummary
}

// VendorSummary is the public projection of the owning vendor joined onto offers
type VendorSummary struct {
	ID           uuid.UUID
	Name         string
	StoreName    *string
	StoreAddress *string
	StoreLogoRef *string
	ProfileImage *string
	Latitude     *float64
	Longitude    *float64
}

// IsOwnedBy reports whether vendorID published the offer
func (o *Offer) IsOwnedBy(vendorID uuid.UUID) bool {
	return o.VendorID == vendorID
}

// HoursRemaining is the whole number of hours until EndDate, never negative
func (o *Offer) HoursRemaining(now time.Time) int {
	if !o.EndDate.After(now) {
		return 0
	}
	return int(o.EndDate.Sub(now).Hours())
}
