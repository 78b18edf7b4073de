package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any verification failure. Callers must not
// learn whether the token was malformed, forged, or expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the caller's public identifier alongside the registered
// claim set.
type Claims struct {
	jwt.RegisteredClaims
	PublicID string `json:"public_id"`
}

// Service issues and verifies signed bearer tokens. It is stateless; the
// signing secret is fixed at construction.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token embedding publicID with an absolute expiry
// of now + the configured TTL.
func (s *Service) Issue(publicID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		PublicID: publicID,
	})
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the embedded public
// identifier. Every failure mode collapses into ErrInvalidToken.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.PublicID == "" {
		return "", ErrInvalidToken
	}
	return claims.PublicID, nil
}
