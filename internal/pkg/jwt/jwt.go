package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// InvalidTokenError is returned for tokens that are malformed, forged or
// expired, as opposed to internal failures.
type InvalidTokenError struct {
	err error
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %v", e.err)
}

func (e *InvalidTokenError) Unwrap() error {
	return e.err
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// CreateToken issues an access token whose subject is the user's e-mail.
func (m *Manager) CreateToken(email string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

func (m *Manager) GetEmailFromToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", &InvalidTokenError{err: err}
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", &InvalidTokenError{err: errors.New("no subject")}
	}

	return claims.Subject, nil
}
