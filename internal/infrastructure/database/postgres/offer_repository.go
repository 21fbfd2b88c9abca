package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainOffer "flashdeals/internal/domain/offer"
	"flashdeals/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferRepository implements offer.Repository interface
type OfferRepository struct {
	db *DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *DB) domainOffer.Repository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, o *domainOffer.Offer) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = domainOffer.StatusActive
	}

	dbModel := toOfferModel(o)
	if err := r.db.DB.WithContext(ctx).Omit("Vendor").Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	o.ID = dbModel.ID
	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, offerID uuid.UUID) (*domainOffer.Offer, error) {
	var dbModel models.OfferModel
	err := r.db.DB.WithContext(ctx).
		Preload("Vendor").
		Where("id = ?", offerID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainOffer.ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return toOfferEntity(&dbModel), nil
}

func (r *OfferRepository) ListLive(ctx context.Context, now time.Time) ([]*domainOffer.Offer, error) {
	return r.listLive(r.db.DB.WithContext(ctx), now)
}

func (r *OfferRepository) ListLiveByVendor(ctx context.Context, vendorID uuid.UUID, now time.Time) ([]*domainOffer.Offer, error) {
	return r.listLive(r.db.DB.WithContext(ctx).Where("vendor_id = ?", vendorID), now)
}

func (r *OfferRepository) listLive(db *gorm.DB, now time.Time) ([]*domainOffer.Offer, error) {
	var dbModels []models.OfferModel
	err := db.Preload("Vendor").
		Where("end_date >= ?", now).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	offers := make([]*domainOffer.Offer, len(dbModels))
	for i := range dbModels {
		offers[i] = toOfferEntity(&dbModels[i])
	}
	return offers, nil
}

func (r *OfferRepository) Update(ctx context.Context, o *domainOffer.Offer) error {
	o.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.OfferModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"title":       o.Title,
			"description": o.Description,
			"category":    o.Category,
			"image_ref":   o.ImageRef,
			"start_date":  o.StartDate,
			"end_date":    o.EndDate,
			"status":      string(o.Status),
			"is_trending": o.IsTrending,
			"updated_at":  o.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update offer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainOffer.ErrOfferNotFound
	}

	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, offerID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", offerID).Delete(&models.WishlistEntryModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete wishlist entries: %w", err)
		}

		result := tx.Where("id = ?", offerID).Delete(&models.OfferModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete offer: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainOffer.ErrOfferNotFound
		}
		return nil
	})
}

func toOfferModel(o *domainOffer.Offer) *models.OfferModel {
	return &models.OfferModel{
		ID:          o.ID,
		VendorID:    o.VendorID,
		Title:       o.Title,
		Description: o.Description,
		Category:    o.Category,
		ImageRef:    o.ImageRef,
		StartDate:   o.StartDate,
		EndDate:     o.EndDate,
		Status:      string(o.Status),
		IsTrending:  o.IsTrending,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOfferEntity(m *models.OfferModel) *domainOffer.Offer {
	o := &domainOffer.Offer{
		ID:          m.ID,
		VendorID:    m.VendorID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		ImageRef:    m.ImageRef,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domainOffer.Status(m.Status),
		IsTrending:  m.IsTrending,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Vendor != nil {
		o.Vendor = &domainOffer.VendorSummary{
			ID:           m.Vendor.ID,
			Name:         m.Vendor.Name,
			StoreName:    m.Vendor.StoreName,
			StoreAddress: m.Vendor.StoreAddress,
			StoreLogoRef: m.Vendor.StoreLogoRef,
			ProfileImage: m.Vendor.ProfileImage,
			Latitude:     m.Vendor.Latitude,
			Longitude:    m.Vendor.Longitude,
		}
	}
	return o
}
