package account

import appErrors "flashdeals/pkg/errors"

var (
	ErrAccountNotFound      = appErrors.NewAppError(appErrors.CodeNotFound, "account not found", nil)
	ErrMobileAlreadyExists  = appErrors.NewAppError(appErrors.CodeConflict, "mobile number is already registered", nil)
	ErrNotVendor            = appErrors.NewAppError(appErrors.CodeForbidden, "only vendor accounts can do this", nil)
	ErrApplicationLocked    = appErrors.NewAppError(appErrors.CodeConflict, "vendor application is already under review or approved", nil)
	ErrInvalidApprovalState = appErrors.NewAppError(appErrors.CodeValidation, "invalid approval status transition", nil)
	ErrWrongCurrentPassword = appErrors.NewAppError(appErrors.CodeInvalidCredentials, "current password is incorrect", nil)
	ErrRoleNotAllowed       = appErrors.NewAppError(appErrors.CodeValidation, "role must be one of: customer, vendor", nil)

	ErrSessionNotFound = appErrors.NewAppError(appErrors.CodeNotFound, "session not found", nil)
)
