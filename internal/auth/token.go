package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed token, bad
// signature, unexpected algorithm, or expiry. Callers get no further detail.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL matches the seven day expiry of the original deployment.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues and verifies signed bearer tokens identifying a user.
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type hs256TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds an HS256 token service. ttl <= 0 falls back to
// DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &hs256TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a compact JWS (header.payload.signature) carrying the user id
// as subject, issued-at, and expiry.
func (s *hs256TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the subject. Only
// HS256 is accepted; any failure collapses to ErrInvalidToken.
func (s *hs256TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
