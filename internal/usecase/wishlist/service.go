package wishlist

import (
	"context"
	"time"

	domainOffer "flashdeals/internal/domain/offer"
	domainWishlist "flashdeals/internal/domain/wishlist"
	"flashdeals/internal/logger"
	"flashdeals/internal/metrics"
	offerUsecase "flashdeals/internal/usecase/offer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements wishlist use cases
type Service struct {
	wishlistRepo domainWishlist.Repository
	offerRepo    domainOffer.Repository
	now          func() time.Time
}

// NewService creates a new wishlist service
func NewService(wishlistRepo domainWishlist.Repository, offerRepo domainOffer.Repository) *Service {
	return &Service{
		wishlistRepo: wishlistRepo,
		offerRepo:    offerRepo,
		now:          time.Now,
	}
}

// Toggle flips the saved state of (accountID, offerID); successive calls strictly alternate
func (s *Service) Toggle(ctx context.Context, accountID, offerID uuid.UUID) (*ToggleResponse, error) {
	if _, err := s.offerRepo.GetByID(ctx, offerID); err != nil {
		return nil, err
	}

	wishlisted, err := s.wishlistRepo.Toggle(ctx, accountID, offerID)
	if err != nil {
		return nil, err
	}

	metrics.RecordWishlistToggle(wishlisted)
	logger.Info("Wishlist toggled",
		zap.String("account_id", accountID.String()),
		zap.String("offer_id", offerID.String()),
		zap.Bool("wishlisted", wishlisted),
		zap.String("event", "wishlist_toggled"),
	)

	return &ToggleResponse{OfferID: offerID, Wishlisted: wishlisted}, nil
}

func (s *Service) Status(ctx context.Context, accountID uuid.UUID) (*StatusResponse, error) {
	ids, err := s.wishlistRepo.OfferIDs(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &StatusResponse{OfferIDs: ids}, nil
}

// List returns saved offers, most recently saved first
func (s *Service) List(ctx context.Context, accountID uuid.UUID) ([]*offerUsecase.OfferResponse, error) {
	offers, err := s.wishlistRepo.ListOffers(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return offerUsecase.ToOfferResponses(offers, s.now()), nil
}
