// Package auth holds the credential primitives: bcrypt password hashing and
// self-contained HS256 access tokens. Tokens carry the user's email as
// subject and an absolute expiry; there is no server-side session state.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskman/taskman-api/internal/core/domain"
)

// DefaultTokenTTL is used when no positive TTL is configured.
const DefaultTokenTTL = 30 * time.Minute

// Clock returns the current time. Tokens uses it both to stamp and to check expiry.
type Clock func() time.Time

// Tokens issues and verifies signed access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    Clock
}

func NewTokens(secret []byte, ttl time.Duration, now Clock) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Tokens{secret: secret, ttl: ttl, now: now}
}

// TTL returns the configured default lifetime.
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs a token for subject that expires ttl from now. JWT dates have
// second precision, so now is truncated and the returned expiry equals exp.
func (t *Tokens) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	now := t.now().Truncate(time.Second)
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// IssueDefault signs a token for subject with the configured TTL.
func (t *Tokens) IssueDefault(subject string) (string, time.Time, error) {
	return t.Issue(subject, t.ttl)
}

// Verify checks the signature first and the expiry second, then returns the subject.
// It fails with domain.ErrInvalidToken or domain.ErrExpiredToken.
func (t *Tokens) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrExpiredToken
		}
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
