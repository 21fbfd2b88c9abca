package postgres

import (
	"context"
	"fmt"
	"time"

	domainOffer "flashdeals/internal/domain/offer"
	domainWishlist "flashdeals/internal/domain/wishlist"
	"flashdeals/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository implements wishlist.Repository interface
type WishlistRepository struct {
	db *DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *DB) domainWishlist.Repository {
	return &WishlistRepository{db: db}
}

// Toggle relies on the (account_id, offer_id) unique index: an insert losing a race is a no-op and still reports true
func (r *WishlistRepository) Toggle(ctx context.Context, accountID, offerID uuid.UUID) (bool, error) {
	wishlisted := false

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("account_id = ? AND offer_id = ?", accountID, offerID).
			Delete(&models.WishlistEntryModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove wishlist entry: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			return nil
		}

		entry := &models.WishlistEntryModel{
			ID:        uuid.New(),
			AccountID: accountID,
			OfferID:   offerID,
			CreatedAt: time.Now(),
		}
		err := tx.Omit("Offer").
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(entry).Error
		if isForeignKeyViolation(err) {
			return domainOffer.ErrOfferNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to add wishlist entry: %w", err)
		}

		wishlisted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return wishlisted, nil
}

func (r *WishlistRepository) OfferIDs(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.DB.WithContext(ctx).
		Model(&models.WishlistEntryModel{}).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Pluck("offer_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return ids, nil
}

func (r *WishlistRepository) ListOffers(ctx context.Context, accountID uuid.UUID) ([]*domainOffer.Offer, error) {
	var entries []models.WishlistEntryModel
	err := r.db.DB.WithContext(ctx).
		Preload("Offer").
		Preload("Offer.Vendor").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist offers: %w", err)
	}

	offers := make([]*domainOffer.Offer, 0, len(entries))
	for i := range entries {
		if entries[i].Offer == nil {
			continue
		}
		offers = append(offers, toOfferEntity(entries[i].Offer))
	}
	return offers, nil
}
