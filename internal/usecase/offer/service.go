package offer

import (
	"context"
	"time"

	domainAccount "flashdeals/internal/domain/account"
	domainOffer "flashdeals/internal/domain/offer"
	"flashdeals/internal/events"
	"flashdeals/internal/logger"
	"flashdeals/internal/metrics"
	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements offer use cases
type Service struct {
	offerRepo   domainOffer.Repository
	accountRepo domainAccount.Repository
	publisher   events.Publisher
	now         func() time.Time
}

// NewService creates a new offer service
func NewService(
	offerRepo domainOffer.Repository,
	accountRepo domainAccount.Repository,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.NewNoop()
	}
	return &Service{
		offerRepo:   offerRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *Service) Create(ctx context.Context, vendorID uuid.UUID, req *CreateOfferRequest) (*OfferResponse, error) {
	req.Title = utils.SanitizeString(req.Title)
	req.Description = utils.SanitizeText(req.Description)
	req.Category = utils.SanitizeString(req.Category)
	req.ImageRef = utils.SanitizeReference(req.ImageRef)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}
	if req.ImageRef == "" {
		return nil, domainOffer.ErrImageRequired
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, domainOffer.ErrInvalidDateRange
	}

	if err := s.requireVendor(ctx, vendorID); err != nil {
		return nil, err
	}

	o := &domainOffer.Offer{
		VendorID:    vendorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageRef:    req.ImageRef,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domainOffer.StatusActive,
		IsTrending:  req.IsTrending,
	}

	if err := s.offerRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	metrics.RecordOfferCreated()
	logger.Info("Offer created successfully",
		zap.String("offer_id", o.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("category", o.Category),
		zap.Time("end_date", o.EndDate),
		zap.String("event", "offer_created"),
	)

	s.publisher.Publish(ctx, events.New(events.OfferCreated, offerEventData(o)))

	created, err := s.offerRepo.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return ToOfferResponse(created, s.now()), nil
}

// Get returns the offer whether or not it is still live
func (s *Service) Get(ctx context.Context, offerID uuid.UUID) (*OfferResponse, error) {
	o, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return ToOfferResponse(o, s.now()), nil
}

// List returns live offers matching the query, newest first
func (s *Service) List(ctx context.Context, query *ListQuery) ([]*OfferResponse, error) {
	now := s.now()
	offers, err := s.offerRepo.ListLive(ctx, now)
	if err != nil {
		return nil, err
	}

	filtered := domainOffer.Filter(offers, criteria(query))
	return ToOfferResponses(filtered, now), nil
}

// Hot returns the highlighted shelf for the query; it is empty while a search is active
func (s *Service) Hot(ctx context.Context, query *ListQuery) ([]*OfferResponse, error) {
	now := s.now()
	offers, err := s.offerRepo.ListLive(ctx, now)
	if err != nil {
		return nil, err
	}

	c := criteria(query)
	hot := domainOffer.HotShelf(domainOffer.Filter(offers, c), c.Search)
	return ToOfferResponses(hot, now), nil
}

func (s *Service) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*OfferResponse, error) {
	now := s.now()
	offers, err := s.offerRepo.ListLiveByVendor(ctx, vendorID, now)
	if err != nil {
		return nil, err
	}
	return ToOfferResponses(offers, now), nil
}

func (s *Service) Categories() *CategoriesResponse {
	categories := make([]string, len(domainOffer.SuggestedCategories))
	copy(categories, domainOffer.SuggestedCategories)
	return &CategoriesResponse{Categories: categories}
}

func (s *Service) Update(ctx context.Context, vendorID, offerID uuid.UUID, req *UpdateOfferRequest) (*OfferResponse, error) {
	req.Title = utils.SanitizeOptional(req.Title)
	req.Category = utils.SanitizeOptional(req.Category)
	if req.Description != nil {
		description := utils.SanitizeText(*req.Description)
		req.Description = &description
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	o, err := s.ownedOffer(ctx, vendorID, offerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.Category != nil {
		o.Category = *req.Category
	}
	if req.ImageRef != nil {
		ref := utils.SanitizeReference(*req.ImageRef)
		if ref == "" {
			return nil, domainOffer.ErrImageRequired
		}
		o.ImageRef = ref
	}
	if req.StartDate != nil {
		o.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		o.EndDate = *req.EndDate
	}
	if req.Status != nil {
		o.Status = domainOffer.Status(*req.Status)
	}
	if req.IsTrending != nil {
		o.IsTrending = *req.IsTrending
	}

	if o.EndDate.Before(o.StartDate) {
		return nil, domainOffer.ErrInvalidDateRange
	}

	if err := s.offerRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("Offer updated",
		zap.String("offer_id", offerID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("event", "offer_updated"),
	)

	s.publisher.Publish(ctx, events.New(events.OfferUpdated, offerEventData(o)))

	return ToOfferResponse(o, s.now()), nil
}

// Delete removes the offer and every wishlist entry pointing at it
func (s *Service) Delete(ctx context.Context, vendorID, offerID uuid.UUID) error {
	if _, err := s.ownedOffer(ctx, vendorID, offerID); err != nil {
		return err
	}

	if err := s.offerRepo.Delete(ctx, offerID); err != nil {
		return err
	}

	logger.Info("Offer deleted",
		zap.String("offer_id", offerID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("event", "offer_deleted"),
	)

	s.publisher.Publish(ctx, events.New(events.OfferDeleted, map[string]interface{}{
		"offer_id":  offerID,
		"vendor_id": vendorID,
	}))
	return nil
}

func (s *Service) requireVendor(ctx context.Context, accountID uuid.UUID) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsVendor() {
		logger.Warn("Non-vendor attempted to publish an offer",
			zap.String("account_id", accountID.String()),
			zap.String("event", "offer_create_forbidden"),
		)
		return domainOffer.ErrVendorRoleMissing
	}
	return nil
}

func (s *Service) ownedOffer(ctx context.Context, vendorID, offerID uuid.UUID) (*domainOffer.Offer, error) {
	o, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(vendorID) {
		return nil, appErrors.ErrNotOwner
	}
	return o, nil
}

func criteria(query *ListQuery) domainOffer.Criteria {
	if query == nil {
		return domainOffer.Criteria{}
	}
	return domainOffer.Criteria{Category: query.Category, Search: query.Q}
}

func offerEventData(o *domainOffer.Offer) map[string]interface{} {
	return map[string]interface{}{
		"offer_id":   o.ID,
		"vendor_id":  o.VendorID,
		"title":      o.Title,
		"category":   o.Category,
		"start_date": o.StartDate,
		"end_date":   o.EndDate,
	}
}
