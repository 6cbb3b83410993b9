package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tobangado69/cvrp-solver/pkg/errors"
)

// Claims is the service-token payload: a caller identity and nothing
// else. There is no per-user session here — a solve request either
// carries a valid service token or it doesn't.
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// Service verifies bearer tokens issued out-of-band (an operator-managed
// shared secret, not a login flow this module exposes).
type Service struct {
	secret []byte
}

// NewService builds a Service around the configured signing secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// ValidateToken parses and verifies a bearer token, returning its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.NewUnauthorizedError("invalid token claims")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.NewUnauthorizedError("token expired")
	}

	return claims, nil
}

// IssueToken mints a bearer token for subject, valid for ttl. Used by
// operator tooling to hand a caller a token out of band; the solve API
// itself never issues tokens.
func (s *Service) IssueToken(subject string, ttl time.Duration) (string, error) {
	claims := Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
