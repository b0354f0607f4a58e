package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken covers bad encoding, bad signature and unexpected algorithms.
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken is returned when the token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)

// TokenCodec issues and decodes HS256-signed identity tokens.
// The secret is read-only after construction, so a codec is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec around the given secret and validity window.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenCodec{secret: key, ttl: ttl, now: time.Now}
}

// Claims describes the JWT payload.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the subject email.
func (c *Claims) Email() string {
	return c.Subject
}

// Expiry returns the expiry time, or the zero time when absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Issued returns the issued-at time, or the zero time when absent.
func (c *Claims) Issued() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// Issue builds and signs a token for the subject email.
func (tc *TokenCodec) Issue(email string) (string, time.Time, error) {
	now := tc.now()
	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, claims.Expiry(), nil
}

// Decode verifies the signature and returns the claims. Expiry is checked
// against the codec clock at call time: a token is expired once now is
// strictly after its exp claim.
func (tc *TokenCodec) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	if tc.now().After(claims.Expiry()) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}

// Validate reports whether the token decodes, is unexpired and belongs to
// expectedEmail. The subject comparison is case-sensitive.
func (tc *TokenCodec) Validate(tokenStr, expectedEmail string) bool {
	claims, err := tc.Decode(tokenStr)
	if err != nil {
		return false
	}
	return claims.Email() == expectedEmail
}
