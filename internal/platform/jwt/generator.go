// Package jwtmw issues and validates the bearer tokens that bind a request to a user.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pokecard_backend/internal/shared/apperr"
)

// DefaultExpiration is how long an issued token stays valid.
const DefaultExpiration = 24 * time.Hour

var (
	// ErrMissingSecret is returned when the issuer is built without a signing key.
	ErrMissingSecret = errors.New("jwt signing secret is empty")

	// ErrInvalidToken covers malformed, expired and badly signed tokens alike.
	ErrInvalidToken = apperr.New(apperr.InvalidCredential, "invalid token")
)

// Claims is the payload of an issued token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a process-wide secret.
type Issuer struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewIssuer creates an Issuer. The secret is fixed for the lifetime of the issuer.
func NewIssuer(secret string, expiration time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &Issuer{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// GenerateToken creates a signed token for userID that expires after the configured duration.
func (i *Issuer) GenerateToken(userID string) (string, error) {
	now := i.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the user id.
// Every failure is reported as ErrInvalidToken.
func (i *Issuer) Validate(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// only HMAC
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	},
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
