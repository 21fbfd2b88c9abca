package utils

import (
	"errors"
	"time"

	appErrors "flashdeals/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the bearer token payload. Each token is bound to exactly one login session.
type Claims struct {
	AccountID  uuid.UUID `json:"account_id"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	SessionID  uuid.UUID `json:"sid"`
	jwt.RegisteredClaims
}

// TokenParams carries what is signed into an access token.
type TokenParams struct {
	AccountID  uuid.UUID
	Role       string
	IsVerified bool
	SessionID  uuid.UUID
	IssuedAt   time.Time
	TTL        time.Duration
}

func GenerateToken(params TokenParams, secret string) (string, time.Time, error) {
	issuedAt := params.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}
	expiresAt := issuedAt.Add(params.TTL)

	claims := Claims{
		AccountID:  params.AccountID,
		Role:       params.Role,
		IsVerified: params.IsVerified,
		SessionID:  params.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   params.AccountID.String(),
			ID:        params.SessionID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ValidateToken checks signature and expiry only. Session liveness is checked by the session registry.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.ErrTokenExpired
		}
		return nil, appErrors.ErrInvalidToken
	}
	if !token.Valid || claims.AccountID == uuid.Nil || claims.SessionID == uuid.Nil {
		return nil, appErrors.ErrInvalidToken
	}

	return claims, nil
}
