package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/admin"
)

// TokenIssuer signs admin access tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, subject, role string) (admin.Token, error)
}

type AdminCredentials struct {
	Username string
	// Password is either plain text or a bcrypt hash ($2a$, $2b$ or $2y$).
	Password string
}

type AdminAuthService struct {
	creds  AdminCredentials
	issuer TokenIssuer
}

func NewAdminAuthService(creds AdminCredentials, issuer TokenIssuer) *AdminAuthService {
	return &AdminAuthService{creds: creds, issuer: issuer}
}

func (s *AdminAuthService) Login(ctx context.Context, username, password string) (admin.Token, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminAuthService.Login")
	defer span.End()

	if strings.TrimSpace(username) == "" || password == "" {
		return admin.Token{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if s.creds.Username == "" || s.creds.Password == "" {
		return admin.Token{}, fmt.Errorf("%w: admin login is not configured", ErrUnauthorized)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	passOK, err := s.checkPassword(password)
	if err != nil {
		return admin.Token{}, err
	}
	if !userOK || !passOK {
		return admin.Token{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.issuer.Issue(ctx, s.creds.Username, admin.RoleAdmin)
	if err != nil {
		return admin.Token{}, fmt.Errorf("issue admin token: %w", err)
	}
	return token, nil
}

func (s *AdminAuthService) checkPassword(password string) (bool, error) {
	if !isBcryptHash(s.creds.Password) {
		return subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) == 1, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.creds.Password), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare admin password: %w", err)
	}
}

func isBcryptHash(v string) bool {
	return strings.HasPrefix(v, "$2a$") || strings.HasPrefix(v, "$2b$") || strings.HasPrefix(v, "$2y$")
}
