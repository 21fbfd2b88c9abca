package session

import (
	"time"

	domainAccount "flashdeals/internal/domain/account"

	"github.com/google/uuid"
)

// Issued is a freshly created session together with its bearer token
type Issued struct {
	Session   *domainAccount.Session
	Token     string
	ExpiresAt time.Time
	Evicted   int
}

type SessionResponse struct {
	ID           uuid.UUID `json:"id"`
	DeviceInfo   string    `json:"device_info"`
	OS           string    `json:"os"`
	LastLogin    time.Time `json:"last_login"`
	LastActiveAt time.Time `json:"last_active_at"`
	IsActive     bool      `json:"is_active"`
	IsCurrent    bool      `json:"is_current"`
}

// RevokeResponse tells the client whether it just logged itself out
type RevokeResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Self      bool      `json:"self"`
}

func ToSessionResponse(s *domainAccount.Session, currentSessionID uuid.UUID) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		ID:           s.ID,
		DeviceInfo:   s.DeviceInfo,
		OS:           s.OS,
		LastLogin:    s.LastLogin,
		LastActiveAt: s.LastActiveAt,
		IsActive:     s.IsActive,
		IsCurrent:    s.ID == currentSessionID,
	}
}
