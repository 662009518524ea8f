package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/admin"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

const issuer = "apexgrid"

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 admin tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be > 0")
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *Manager) Issue(_ context.Context, subject, role string) (admin.Token, error) {
	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return admin.Token{}, fmt.Errorf("sign admin token: %w", err)
	}
	return admin.Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

func (m *Manager) VerifyAccessToken(_ context.Context, token string) (admin.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return admin.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	var parsed claims
	if _, err := parser.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return admin.Principal{}, fmt.Errorf("%w: invalid token: %v", usecase.ErrUnauthorized, err)
	}

	now := m.now()
	if parsed.ExpiresAt == nil || !parsed.ExpiresAt.After(now) {
		return admin.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
	}
	if parsed.Issuer != issuer {
		return admin.Principal{}, fmt.Errorf("%w: unexpected issuer", usecase.ErrUnauthorized)
	}
	if parsed.Role != admin.RoleAdmin {
		return admin.Principal{}, fmt.Errorf("%w: admin role required", usecase.ErrUnauthorized)
	}

	return admin.Principal{
		Subject:   parsed.Subject,
		Role:      parsed.Role,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}
