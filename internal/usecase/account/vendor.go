package account

import (
	"context"

	domainAccount "flashdeals/internal/domain/account"
	"flashdeals/internal/events"
	"flashdeals/internal/logger"
	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitVendorApplication stores store and identity details and puts the application up for review
func (s *Service) SubmitVendorApplication(ctx context.Context, callerID, vendorID uuid.UUID, req *VendorApplicationRequest) (*AccountResponse, error) {
	req.StoreName = utils.SanitizeString(req.StoreName)
	req.StoreAddress = utils.SanitizeText(req.StoreAddress)
	req.IDType = utils.SanitizeString(req.IDType)
	req.IDNumber = utils.SanitizeString(req.IDNumber)
	req.IDDocumentRef = utils.SanitizeReference(req.IDDocumentRef)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	account, err := s.ownedVendor(ctx, callerID, vendorID)
	if err != nil {
		return nil, err
	}

	if !domainAccount.CanSubmitApplication(account.Vendor.ApprovalStatus) {
		return nil, domainAccount.ErrApplicationLocked
	}

	profile := account.Vendor
	profile.StoreName = &req.StoreName
	profile.StoreAddress = &req.StoreAddress
	profile.IDType = &req.IDType
	profile.IDNumber = &req.IDNumber
	profile.IDDocumentRef = &req.IDDocumentRef
	if req.Geo != nil {
		profile.Geo = toGeoPoint(req.Geo)
	}
	profile.ApprovalStatus = domainAccount.ApprovalSubmitted

	if err := s.accountRepo.UpdateVendorProfile(ctx, vendorID, profile); err != nil {
		return nil, err
	}
	account.Vendor = profile

	logger.Info("Vendor application submitted",
		zap.String("vendor_id", vendorID.String()),
		zap.String("event", "vendor_application_submitted"),
	)

	s.publisher.Publish(ctx, events.New(events.VendorApplicationSubmitted, map[string]interface{}{
		"vendor_id":  vendorID,
		"store_name": req.StoreName,
	}))

	return ToAccountResponse(account), nil
}

// UpdateStoreDetails applies a partial update to the vendor's public store fields
func (s *Service) UpdateStoreDetails(ctx context.Context, callerID, vendorID uuid.UUID, req *UpdateStoreRequest) (*AccountResponse, error) {
	req.StoreName = utils.SanitizeOptional(req.StoreName)
	if req.StoreAddress != nil {
		address := utils.SanitizeText(*req.StoreAddress)
		req.StoreAddress = &address
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	account, err := s.ownedVendor(ctx, callerID, vendorID)
	if err != nil {
		return nil, err
	}

	profile := account.Vendor
	if req.StoreName != nil {
		profile.StoreName = req.StoreName
	}
	if req.StoreAddress != nil {
		profile.StoreAddress = req.StoreAddress
	}
	if req.StoreLogoRef != nil {
		profile.StoreLogoRef = sanitizeRef(req.StoreLogoRef)
	}
	if req.Geo != nil {
		profile.Geo = toGeoPoint(req.Geo)
	}

	if err := s.accountRepo.UpdateVendorProfile(ctx, vendorID, profile); err != nil {
		return nil, err
	}
	account.Vendor = profile

	logger.Info("Store details updated",
		zap.String("vendor_id", vendorID.String()),
		zap.String("event", "store_updated"),
	)

	return ToAccountResponse(account), nil
}

// UpdateApprovalStatus is the staff review step of a vendor application
func (s *Service) UpdateApprovalStatus(ctx context.Context, reviewerID, vendorID uuid.UUID, req *ApprovalRequest) (*AccountResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	account, err := s.accountRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !account.IsVendor() {
		return nil, domainAccount.ErrNotVendor
	}

	next := domainAccount.ApprovalStatus(req.Status)
	current := account.Vendor.ApprovalStatus
	if !domainAccount.CanTransitionApproval(current, next) {
		logger.Warn("Invalid approval transition",
			zap.String("vendor_id", vendorID.String()),
			zap.String("from", string(current)),
			zap.String("to", string(next)),
			zap.String("event", "vendor_approval_invalid_transition"),
		)
		return nil, domainAccount.ErrInvalidApprovalState
	}

	if err := s.accountRepo.UpdateApprovalStatus(ctx, vendorID, next); err != nil {
		return nil, err
	}
	account.Vendor.ApprovalStatus = next

	logger.Info("Vendor approval status changed",
		zap.String("vendor_id", vendorID.String()),
		zap.String("reviewer_id", reviewerID.String()),
		zap.String("from", string(current)),
		zap.String("to", string(next)),
		zap.String("event", "vendor_approval_changed"),
	)

	s.publisher.Publish(ctx, events.New(events.VendorApprovalChanged, map[string]interface{}{
		"vendor_id": vendorID,
		"from":      current,
		"to":        next,
	}))

	return ToAccountResponse(account), nil
}

func (s *Service) ownedVendor(ctx context.Context, callerID, vendorID uuid.UUID) (*domainAccount.Account, error) {
	if callerID != vendorID {
		return nil, appErrors.ErrNotOwner
	}

	account, err := s.accountRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !account.IsVendor() {
		return nil, domainAccount.ErrNotVendor
	}
	return account, nil
}
