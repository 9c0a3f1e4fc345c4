package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, wrong secret, malformed input or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the principal id. The "id" claim name is part of the wire
// contract with existing clients.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens for one principal class.
// User and creator tokens are scoped by distinct secrets, so a token from
// one class never verifies against the other.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a service signing with the given secret.
// A zero ttl issues non-expiring tokens.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the principal id.
func (s *TokenService) Issue(principalID string) (string, error) {
	claims := Claims{
		ID: principalID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(s.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token and returns the embedded principal id.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}
