package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainAccount "flashdeals/internal/domain/account"
	"flashdeals/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository implements account.SessionRepository interface
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) domainAccount.SessionRepository {
	return &SessionRepository{db: db}
}

// Append locks the owning account row so concurrent logins of one account serialize on the cap
func (r *SessionRepository) Append(ctx context.Context, s *domainAccount.Session, limit int) (int, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	evicted := 0
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.AccountModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", s.AccountID).
			First(&owner).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainAccount.ErrAccountNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock account: %w", err)
		}

		dbModel := toSessionModel(s)
		if err := tx.Create(dbModel).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		s.Seq = dbModel.Seq

		result := tx.Exec(
			`DELETE FROM account_sessions
			 WHERE account_id = ? AND id NOT IN (
			     SELECT id FROM account_sessions WHERE account_id = ? ORDER BY seq DESC LIMIT ?
			 )`,
			s.AccountID, s.AccountID, limit,
		)
		if result.Error != nil {
			return fmt.Errorf("failed to evict sessions: %w", result.Error)
		}
		evicted = int(result.RowsAffected)

		return nil
	})
	if err != nil {
		return 0, err
	}

	return evicted, nil
}

func (r *SessionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domainAccount.Session, error) {
	var dbModels []models.SessionModel
	err := r.db.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("seq DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*domainAccount.Session, len(dbModels))
	for i := range dbModels {
		sessions[i] = toSessionEntity(&dbModels[i])
	}
	return sessions, nil
}

func (r *SessionRepository) Delete(ctx context.Context, accountID, sessionID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND account_id = ?", sessionID, accountID).
		Delete(&models.SessionModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainAccount.ErrSessionNotFound
	}

	return nil
}

func (r *SessionRepository) Touch(ctx context.Context, accountID, sessionID uuid.UUID, at time.Time) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.SessionModel{}).
		Where("id = ? AND account_id = ?", sessionID, accountID).
		Update("last_active_at", at)

	if result.Error != nil {
		return fmt.Errorf("failed to touch session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainAccount.ErrSessionNotFound
	}

	return nil
}

func (r *SessionRepository) DeleteInactiveSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("last_active_at < ?", cutoff).
		Delete(&models.SessionModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete inactive sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func toSessionModel(s *domainAccount.Session) *models.SessionModel {
	return &models.SessionModel{
		ID:           s.ID,
		AccountID:    s.AccountID,
		DeviceInfo:   s.DeviceInfo,
		OS:           s.OS,
		LastLogin:    s.LastLogin,
		LastActiveAt: s.LastActiveAt,
		IsActive:     s.IsActive,
	}
}

func toSessionEntity(m *models.SessionModel) *domainAccount.Session {
	return &domainAccount.Session{
		ID:           m.ID,
		AccountID:    m.AccountID,
		Seq:          m.Seq,
		DeviceInfo:   m.DeviceInfo,
		OS:           m.OS,
		LastLogin:    m.LastLogin,
		LastActiveAt: m.LastActiveAt,
		IsActive:     m.IsActive,
	}
}
