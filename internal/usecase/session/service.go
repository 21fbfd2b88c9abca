package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flashdeals/internal/config"
	domainAccount "flashdeals/internal/domain/account"
	"flashdeals/internal/logger"
	"flashdeals/internal/metrics"
	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the session registry: it issues bearer tokens bound to sessions and honours revocation
type Service struct {
	sessionRepo domainAccount.SessionRepository
	config      *config.Config
	now         func() time.Time
}

// NewService creates a new session service
func NewService(sessionRepo domainAccount.SessionRepository, cfg *config.Config) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		config:      cfg,
		now:         time.Now,
	}
}

// Create records a login for account and signs a token carrying the new session id
func (s *Service) Create(ctx context.Context, account *domainAccount.Account, deviceInfo, os string) (*Issued, error) {
	now := s.now()
	session := &domainAccount.Session{
		ID:           uuid.New(),
		AccountID:    account.ID,
		DeviceInfo:   deviceInfo,
		OS:           os,
		LastLogin:    now,
		LastActiveAt: now,
		IsActive:     true,
	}

	evicted, err := s.sessionRepo.Append(ctx, session, domainAccount.MaxSessionsPerAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	if evicted > 0 {
		metrics.RecordSessionsEvicted(evicted)
		logger.Info("Oldest sessions evicted",
			zap.String("account_id", account.ID.String()),
			zap.Int("evicted", evicted),
			zap.String("event", "session_evicted"),
		)
	}

	token, expiresAt, err := utils.GenerateToken(utils.TokenParams{
		AccountID:  account.ID,
		Role:       string(account.Role),
		IsVerified: account.IsVerified,
		SessionID:  session.ID,
		IssuedAt:   now,
		TTL:        s.config.JWT.TTL(),
	}, s.config.JWT.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &Issued{
		Session:   session,
		Token:     token,
		ExpiresAt: expiresAt,
		Evicted:   evicted,
	}, nil
}

// List returns the account's sessions most recent first, flagging the caller's own
func (s *Service) List(ctx context.Context, accountID, currentSessionID uuid.UUID) ([]*SessionResponse, error) {
	sessions, err := s.sessionRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]*SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = ToSessionResponse(session, currentSessionID)
	}
	return responses, nil
}

// Revoke removes a session. Self is set when the caller revoked the session its own token is bound to.
func (s *Service) Revoke(ctx context.Context, accountID, callerSessionID, sessionID uuid.UUID) (*RevokeResponse, error) {
	if err := s.sessionRepo.Delete(ctx, accountID, sessionID); err != nil {
		return nil, err
	}

	self := callerSessionID == sessionID
	logger.Info("Session revoked",
		zap.String("account_id", accountID.String()),
		zap.String("session_id", sessionID.String()),
		zap.Bool("self", self),
		zap.String("event", "session_revoked"),
	)

	return &RevokeResponse{SessionID: sessionID, Self: self}, nil
}

// ValidateToken checks the token signature and expiry, then that its session still exists
func (s *Service) ValidateToken(ctx context.Context, token string) (*utils.Claims, error) {
	claims, err := utils.ValidateToken(token, s.config.JWT.Secret)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Touch(ctx, claims.AccountID, claims.SessionID, s.now()); err != nil {
		if errors.Is(err, domainAccount.ErrSessionNotFound) {
			logger.Debug("Token presented for revoked session",
				zap.String("account_id", claims.AccountID.String()),
				zap.String("session_id", claims.SessionID.String()),
				zap.String("event", "token_session_revoked"),
			)
			return nil, appErrors.ErrSessionRevoked
		}
		return nil, fmt.Errorf("failed to check session: %w", err)
	}

	return claims, nil
}
