package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for account persistence
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, accountID uuid.UUID) (*Account, error)
	GetByMobile(ctx context.Context, mobile string) (*Account, error)
	UpdateProfile(ctx context.Context, account *Account) error
	UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error
	MarkVerified(ctx context.Context, accountID uuid.UUID) error
	UpdateVendorProfile(ctx context.Context, accountID uuid.UUID, profile VendorProfile) error
	UpdateApprovalStatus(ctx context.Context, accountID uuid.UUID, status ApprovalStatus) error
	UpdateRole(ctx context.Context, accountID uuid.UUID, role Role) error
}

// SessionRepository stores the per-account login history
type SessionRepository interface {
	// Append stores session and evicts the oldest sessions so that at most limit remain.
	// It returns how many sessions were evicted.
	Append(ctx context.Context, session *Session, limit int) (int, error)
	// ListByAccount returns sessions most recent first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Session, error)
	Delete(ctx context.Context, accountID, sessionID uuid.UUID) error
	// Touch records activity and fails with ErrSessionNotFound when the session is gone.
	Touch(ctx context.Context, accountID, sessionID uuid.UUID, at time.Time) error
	DeleteInactiveSince(ctx context.Context, cutoff time.Time) (int64, error)
}
