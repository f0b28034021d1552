package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/novaxiii/agency-backend/internal/apperrors"
)

// Passwords hashes and checks passwords with bcrypt.
type Passwords struct {
	cost int
}

func NewPasswords(cost int) Passwords {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Passwords{cost: cost}
}

func (p Passwords) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", apperrors.Internal("hash password", err)
	}
	return string(hash), nil
}

// Compare retourne nil si le mot de passe correspond au hash.
func (p Passwords) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return apperrors.Wrap(apperrors.KindAuth, "Invalid credentials", err)
	}
	return nil
}
