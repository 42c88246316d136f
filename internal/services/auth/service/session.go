package service

import (
	"errors"
	"time"

	"taxkaki/internal/core/normalize"
	ptime "taxkaki/internal/platform/time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "taxkaki"

// ErrSessionsDisabled is returned by Issue when no secret is configured
var ErrSessionsDisabled = errors.New("session tokens are disabled")

// Sessions issues and verifies HS256 bearer tokens whose subject is a canonical PAN
type Sessions struct {
	secret []byte
	ttl    time.Duration
	clock  ptime.Clock
}

// NewSessions returns nil for an empty secret, which disables tokens
func NewSessions(secret string, ttl time.Duration, clock ptime.Clock) *Sessions {
	if secret == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if clock == nil {
		clock = ptime.System{}
	}
	return &Sessions{secret: []byte(secret), ttl: ttl, clock: clock}
}

// Enabled reports whether tokens are issued
func (s *Sessions) Enabled() bool { return s != nil }

// Issue signs a token for pan
func (s *Sessions) Issue(pan string) (string, error) {
	if s == nil {
		return "", ErrSessionsDisabled
	}
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   normalize.PAN(pan),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies token and returns its subject
func (s *Sessions) Parse(token string) (string, error) {
	if s == nil {
		return "", ErrSessionsDisabled
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
