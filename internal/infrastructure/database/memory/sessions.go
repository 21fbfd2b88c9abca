package memory

import (
	"context"
	"time"

	"flashdeals/internal/domain/account"

	"github.com/google/uuid"
)

type sessionRepository struct {
	store *Store
}

// Append keeps sessions in ascending seq order and trims from the front
func (r *sessionRepository) Append(_ context.Context, session *account.Session, limit int) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[session.AccountID]; !ok {
		return 0, account.ErrAccountNotFound
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.Seq = s.nextSeqLocked()

	list := append(s.sessions[session.AccountID], *session)
	evicted := 0
	if limit > 0 && len(list) > limit {
		evicted = len(list) - limit
		list = append([]account.Session(nil), list[evicted:]...)
	}
	s.sessions[session.AccountID] = list

	return evicted, nil
}

func (r *sessionRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*account.Session, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.sessions[accountID]
	out := make([]*account.Session, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		c := list[i]
		out = append(out, &c)
	}
	return out, nil
}

func (r *sessionRepository) Delete(_ context.Context, accountID, sessionID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.sessions[accountID]
	for i := range list {
		if list[i].ID == sessionID {
			s.sessions[accountID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return account.ErrSessionNotFound
}

func (r *sessionRepository) Touch(_ context.Context, accountID, sessionID uuid.UUID, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.sessions[accountID]
	for i := range list {
		if list[i].ID == sessionID {
			list[i].LastActiveAt = at
			return nil
		}
	}
	return account.ErrSessionNotFound
}

func (r *sessionRepository) DeleteInactiveSince(_ context.Context, cutoff time.Time) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for accountID, list := range s.sessions {
		kept := list[:0:0]
		for _, session := range list {
			if session.LastActiveAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, session)
		}
		s.sessions[accountID] = kept
	}
	return removed, nil
}
