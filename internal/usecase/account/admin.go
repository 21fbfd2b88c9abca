package account

import (
	"context"
	"errors"
	"fmt"

	domainAccount "flashdeals/internal/domain/account"
	"flashdeals/internal/logger"
	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"go.uber.org/zap"
)

// EnsureAdminRequest names the staff account kept in sync with configuration
type EnsureAdminRequest struct {
	Name     string `validate:"required,min=2,max=255"`
	Mobile   string `validate:"required,mobile"`
	Password string `validate:"required"`
}

// EnsureAdmin creates the staff account, or promotes and re-keys an existing account with that mobile.
// The configured password always wins so a rotated secret takes effect on the next start.
func (s *Service) EnsureAdmin(ctx context.Context, req *EnsureAdminRequest) (*AccountResponse, error) {
	req.Mobile = utils.NormalizeMobile(req.Mobile)
	req.Name = utils.SanitizeString(req.Name)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.Validation(err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := s.accountRepo.GetByMobile(ctx, req.Mobile)
	if errors.Is(err, domainAccount.ErrAccountNotFound) {
		admin := &domainAccount.Account{
			Mobile:         req.Mobile,
			Name:           req.Name,
			PasswordHashed: hashedPassword,
			Role:           domainAccount.RoleAdmin,
			IsVerified:     true,
		}
		if err := s.accountRepo.Create(ctx, admin); err != nil {
			return nil, err
		}

		logger.Info("Admin account created",
			zap.String("account_id", admin.ID.String()),
			zap.String("event", "admin_seeded"),
		)
		return ToAccountResponse(admin), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin account: %w", err)
	}

	if existing.Role != domainAccount.RoleAdmin {
		if err := s.accountRepo.UpdateRole(ctx, existing.ID, domainAccount.RoleAdmin); err != nil {
			return nil, err
		}
		logger.Warn("Existing account promoted to admin",
			zap.String("account_id", existing.ID.String()),
			zap.String("previous_role", string(existing.Role)),
			zap.String("event", "admin_promoted"),
		)
	}
	if err := s.accountRepo.UpdatePassword(ctx, existing.ID, hashedPassword); err != nil {
		return nil, err
	}
	if !existing.IsVerified {
		if err := s.accountRepo.MarkVerified(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.accountRepo.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Admin account ensured",
		zap.String("account_id", updated.ID.String()),
		zap.String("event", "admin_ensured"),
	)
	return ToAccountResponse(updated), nil
}
