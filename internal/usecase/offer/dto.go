package offer

import (
	"time"

	domainOffer "flashdeals/internal/domain/offer"

	"github.com/google/uuid"
)

type CreateOfferRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=255"`
	Description string    `json:"description" validate:"max=5000"`
	Category    string    `json:"category" validate:"required,max=100"`
	ImageRef    string    `json:"image_ref"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	IsTrending  bool      `json:"is_trending"`
}

type UpdateOfferRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=2,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Category    *string    `json:"category" validate:"omitempty,min=1,max=100"`
	ImageRef    *string    `json:"image_ref"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      *string    `json:"status" validate:"omitempty,oneof=active inactive"`
	IsTrending  *bool      `json:"is_trending"`
}

// ListQuery carries the shopper's category chip and search box
type ListQuery struct {
	Category string `form:"category"`
	Q        string `form:"q"`
}

type VendorResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	StoreName    *string   `json:"store_name"`
	StoreAddress *string   `json:"store_address"`
	StoreLogoRef *string   `json:"store_logo_ref"`
	ProfileImage *string   `json:"profile_image"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
}

type OfferResponse struct {
	ID             uuid.UUID       `json:"id"`
	VendorID       uuid.UUID       `json:"vendor_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	ImageRef       string          `json:"image_ref"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Status         string          `json:"status"`
	IsTrending     bool            `json:"is_trending"`
	HoursRemaining int             `json:"hours_remaining"`
	CreatedAt      time.Time       `json:"created_at"`
	Vendor         *VendorResponse `json:"vendor"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func ToOfferResponse(o *domainOffer.Offer, now time.Time) *OfferResponse {
	if o == nil {
		return nil
	}

	resp := &OfferResponse{
		ID:             o.ID,
		VendorID:       o.VendorID,
		Title:          o.Title,
		Description:    o.Description,
		Category:       o.Category,
		ImageRef:       o.ImageRef,
		StartDate:      o.StartDate,
		EndDate:        o.EndDate,
		Status:         string(o.Status),
		IsTrending:     o.IsTrending,
		HoursRemaining: o.HoursRemaining(now),
		CreatedAt:      o.CreatedAt,
	}

	if o.Vendor != nil {
		resp.Vendor = &VendorResponse{
			ID:           o.Vendor.ID,
			Name:         o.Vendor.Name,
			StoreName:    o.Vendor.StoreName,
			StoreAddress: o.Vendor.StoreAddress,
			StoreLogoRef: o.Vendor.StoreLogoRef,
			ProfileImage: o.Vendor.ProfileImage,
			Latitude:     o.Vendor.Latitude,
			Longitude:    o.Vendor.Longitude,
		}
	}

	return resp
}

func ToOfferResponses(offers []*domainOffer.Offer, now time.Time) []*OfferResponse {
	responses := make([]*OfferResponse, len(offers))
	for i, o := range offers {
		responses[i] = ToOfferResponse(o, now)
	}
	return responses
}
