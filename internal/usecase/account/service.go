package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainAccount "flashdeals/internal/domain/account"
	"flashdeals/internal/events"
	"flashdeals/internal/logger"
	"flashdeals/internal/metrics"
	"flashdeals/internal/otp"
	"flashdeals/internal/usecase/session"
	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionIssuer creates the login session and its token
type SessionIssuer interface {
	Create(ctx context.Context, account *domainAccount.Account, deviceInfo, os string) (*session.Issued, error)
}

// Service implements account use cases
type Service struct {
	accountRepo domainAccount.Repository
	sessions    SessionIssuer
	otp         otp.Provider
	publisher   events.Publisher
}

// NewService creates a new account service
func NewService(
	accountRepo domainAccount.Repository,
	sessions SessionIssuer,
	otpProvider otp.Provider,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.NewNoop()
	}
	return &Service{
		accountRepo: accountRepo,
		sessions:    sessions,
		otp:         otpProvider,
		publisher:   publisher,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	req.Mobile = utils.NormalizeMobile(req.Mobile)
	req.Name = utils.SanitizeString(req.Name)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.Validation(err.Error(), nil)
	}

	role, err := parseSelfServiceRole(req.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.GetByMobile(ctx, req.Mobile)
	if err != nil && !errors.Is(err, domainAccount.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing mobile",
			zap.String("event", "registration_failed_duplicate_mobile"),
		)
		return nil, domainAccount.ErrMobileAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domainAccount.Account{
		Mobile:         req.Mobile,
		Name:           req.Name,
		PasswordHashed: hashedPassword,
		Role:           role,
		ProfileImage:   sanitizeRef(req.ProfileImage),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Account registered successfully",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(account.Role)),
		zap.String("event", "account_registered"),
	)

	s.publisher.Publish(ctx, events.New(events.AccountRegistered, map[string]interface{}{
		"account_id": account.ID,
		"role":       account.Role,
	}))

	return &RegisterResponse{AccountID: account.ID}, nil
}

// Login answers an unknown mobile and a wrong password with the same error
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	req.Mobile = utils.NormalizeMobile(req.Mobile)
	req.DeviceInfo = utils.SanitizeString(req.DeviceInfo)
	req.OS = utils.SanitizeString(req.OS)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	account, err := s.accountRepo.GetByMobile(ctx, req.Mobile)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			metrics.RecordLogin("invalid_credentials")
			logger.Warn("Login attempt with unknown mobile",
				zap.String("event", "login_failed_unknown_mobile"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(account.PasswordHashed, req.Password) {
		metrics.RecordLogin("invalid_credentials")
		logger.Warn("Login attempt with invalid password",
			zap.String("account_id", account.ID.String()),
			zap.String("event", "login_failed_invalid_credentials"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	issued, err := s.sessions.Create(ctx, account, req.DeviceInfo, req.OS)
	if err != nil {
		metrics.RecordLogin("error")
		return nil, err
	}

	metrics.RecordLogin("success")
	logger.Info("Account logged in successfully",
		zap.String("account_id", account.ID.String()),
		zap.String("session_id", issued.Session.ID.String()),
		zap.String("os", req.OS),
		zap.String("event", "login_success"),
	)

	return &LoginResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		SessionID: issued.Session.ID,
		Account:   ToAccountResponse(account),
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ToAccountResponse(account), nil
}

func (s *Service) UpdateProfile(ctx context.Context, accountID uuid.UUID, req *UpdateProfileRequest) (*AccountResponse, error) {
	req.Name = utils.SanitizeOptional(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.ProfileImage != nil {
		account.ProfileImage = sanitizeRef(req.ProfileImage)
	}

	if err := s.accountRepo.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("account_id", accountID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToAccountResponse(account), nil
}

// ChangePassword leaves the stored credential untouched unless currentPassword matches
func (s *Service) ChangePassword(ctx context.Context, accountID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation(utils.ValidationMessage(err), err)
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.Validation(err.Error(), nil)
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(account.PasswordHashed, req.CurrentPassword) {
		logger.Warn("Password change with wrong current password",
			zap.String("account_id", accountID.String()),
			zap.String("event", "password_change_failed"),
		)
		return domainAccount.ErrWrongCurrentPassword
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.UpdatePassword(ctx, accountID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password changed",
		zap.String("account_id", accountID.String()),
		zap.String("event", "password_changed"),
	)
	return nil
}

func (s *Service) IssueOTP(ctx context.Context, req *IssueOTPRequest) (*IssueOTPResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	if _, err := s.accountRepo.GetByID(ctx, req.AccountID); err != nil {
		return nil, err
	}

	challengeID, err := s.otp.Issue(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue verification code: %w", err)
	}

	logger.Info("Verification code issued",
		zap.String("account_id", req.AccountID.String()),
		zap.String("event", "otp_issued"),
	)

	return &IssueOTPResponse{ChallengeID: challengeID}, nil
}

// Verify marks the account verified when the code answers the challenge
func (s *Service) Verify(ctx context.Context, req *VerifyRequest) error {
	req.OTP = strings.TrimSpace(req.OTP)
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation(utils.ValidationMessage(err), err)
	}

	if _, err := s.accountRepo.GetByID(ctx, req.AccountID); err != nil {
		return err
	}

	challengeID := strings.TrimSpace(req.ChallengeID)
	if challengeID == "" {
		challengeID = otp.ChallengeFor(req.AccountID)
	}

	ok, err := s.otp.Verify(ctx, challengeID, req.OTP)
	if err != nil {
		return fmt.Errorf("failed to verify code: %w", err)
	}
	if !ok {
		logger.Warn("Invalid verification code",
			zap.String("account_id", req.AccountID.String()),
			zap.String("event", "otp_invalid"),
		)
		return appErrors.ErrInvalidOTP
	}

	if err := s.accountRepo.MarkVerified(ctx, req.AccountID); err != nil {
		return err
	}

	logger.Info("Account verified",
		zap.String("account_id", req.AccountID.String()),
		zap.String("event", "account_verified"),
	)
	return nil
}

func parseSelfServiceRole(role string) (domainAccount.Role, error) {
	switch domainAccount.Role(strings.ToLower(strings.TrimSpace(role))) {
	case "", domainAccount.RoleCustomer:
		return domainAccount.RoleCustomer, nil
	case domainAccount.RoleVendor:
		return domainAccount.RoleVendor, nil
	default:
		return "", domainAccount.ErrRoleNotAllowed
	}
}

func sanitizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	cleaned := utils.SanitizeReference(*ref)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
