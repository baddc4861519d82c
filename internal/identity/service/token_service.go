package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/tograil/Mongocore/internal/identity/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/tograil/Mongocore/internal/errors"
	"github.com/tograil/Mongocore/internal/identity/domain"
)

type TokenGenerator interface {
	Issue(user *domain.User) (string, time.Time, error)
	Verify(tokenString string) (*jwt.RegisteredClaims, error)
}

// TokenService signs short-lived HS256 access tokens. Every token carries a
// unique jti and the user name as subject.
type TokenService struct {
	SigningKey []byte
	Issuer     string
	Audience   string
	Expiry     time.Duration
}

func NewTokenService(signingKey, issuer, audience string, expiryMinutes int) *TokenService {
	return &TokenService{
		SigningKey: []byte(signingKey),
		Issuer:     issuer,
		Audience:   audience,
		Expiry:     time.Duration(expiryMinutes) * time.Minute,
	}
}

// Issue returns the signed token and its expiration instant. A signing
// failure is reported, never defaulted.
func (ts *TokenService) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.Expiry)

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.UserName,
		Issuer:    ts.Issuer,
		Audience:  jwt.ClaimStrings{ts.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.SigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrSigningFailure, err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token issued by this service.
func (ts *TokenService) Verify(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.SigningKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
