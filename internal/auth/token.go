// Package auth issues and verifies bearer tokens, hashes passwords and holds
// the role capability policy.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	model "github.com/novaxiii/agency-backend/internal/models"
)

// Claims is the identity carried by a token.
type Claims struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 tokens with a shared secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signe un token pour l'utilisateur.
func (t *Tokens) Issue(u model.User) (string, error) {
	now := t.now()
	claims := Claims{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", apperrors.Internal("sign token", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims. Any failure is an auth error.
func (t *Tokens) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.Unauthorized("Missing token")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(apperrors.KindAuth, "Token expired", err)
		}
		return nil, apperrors.Wrap(apperrors.KindAuth, "Invalid token", err)
	}
	if claims.ID == "" {
		return nil, apperrors.Unauthorized("Invalid token")
	}
	return &claims, nil
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
