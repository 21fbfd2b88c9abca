package otp

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
)

// DefaultStaticCode is accepted by StaticProvider when no code is configured
const DefaultStaticCode = "123456"

// Provider issues and checks one-time verification codes.
type Provider interface {
	// Issue starts a verification for accountID and returns the challenge to verify against.
	Issue(ctx context.Context, accountID uuid.UUID) (string, error)
	// Verify reports whether code answers challengeID.
	Verify(ctx context.Context, challengeID, code string) (bool, error)
}

// StaticProvider is the demo provider: the challenge is the account id and a single fixed code unlocks everything.
type StaticProvider struct {
	code string
}

func NewStaticProvider(code string) *StaticProvider {
	if code == "" {
		code = DefaultStaticCode
	}
	return &StaticProvider{code: code}
}

func (p *StaticProvider) Issue(_ context.Context, accountID uuid.UUID) (string, error) {
	if accountID == uuid.Nil {
		return "", errors.New("account id is required")
	}
	return ChallengeFor(accountID), nil
}

func (p *StaticProvider) Verify(_ context.Context, challengeID, code string) (bool, error) {
	if _, err := uuid.Parse(challengeID); err != nil {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(p.code)) == 1, nil
}

// ChallengeFor is the challenge StaticProvider issues for accountID
func ChallengeFor(accountID uuid.UUID) string {
	return accountID.String()
}
