package offer

import appErrors "flashdeals/pkg/errors"

var (
	ErrOfferNotFound     = appErrors.NewAppError(appErrors.CodeNotFound, "offer not found", nil)
	ErrImageRequired     = appErrors.NewAppError(appErrors.CodeValidation, "offer image is required", nil)
	ErrInvalidDateRange  = appErrors.NewAppError(appErrors.CodeValidation, "end date must not be before start date", nil)
	ErrVendorRoleMissing = appErrors.NewAppError(appErrors.CodeForbidden, "only vendors can publish offers", nil)
)
