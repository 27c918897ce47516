package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/userdesk-server/internal/model"
)

var (
	// ErrMissingToken is returned when no bearer token was presented.
	ErrMissingToken = errors.New("missing authorization token")
	// ErrInvalidToken is returned when the token does not validate.
	ErrInvalidToken = errors.New("invalid authorization token")
)

// Authenticator resolves an Authorization header value to a caller subject.
type Authenticator struct {
	tokenManager model.TokenManager
}

func NewAuthenticator(tokenManager model.TokenManager) *Authenticator {
	return &Authenticator{tokenManager: tokenManager}
}

// Authenticate accepts "Bearer <token>" with a case-insensitive scheme.
func (a *Authenticator) Authenticate(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}

	subject, err := a.tokenManager.ParseAccessToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return subject, nil
}
