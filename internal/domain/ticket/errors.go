package ticket

import appErrors "flashdeals/pkg/errors"

var (
	ErrTicketNotFound     = appErrors.NewAppError(appErrors.CodeNotFound, "ticket not found", nil)
	ErrInvalidCategory    = appErrors.NewAppError(appErrors.CodeValidation, "category must be one of: General, Technical, Billing, Store Verification, Others", nil)
	ErrInvalidPriority    = appErrors.NewAppError(appErrors.CodeValidation, "priority must be one of: Low, Medium, High, Urgent", nil)
	ErrInvalidStatus      = appErrors.NewAppError(appErrors.CodeValidation, "status must be one of: Open, In Review, Resolved, Closed", nil)
	ErrInvalidTransition  = appErrors.NewAppError(appErrors.CodeValidation, "invalid ticket status transition", nil)
	ErrDuplicateCode      = appErrors.NewAppError(appErrors.CodeConflict, "ticket code already in use", nil)
	ErrCodeSpaceExhausted = appErrors.NewAppError(appErrors.CodeConflict, "could not allocate a ticket code, please retry", nil)
)
