package auth

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// PasswordHasher wraps one-way salted argon2id hashing.
type PasswordHasher struct {
	params *argon2id.Params
}

func NewPasswordHasher() PasswordHasher {
	return PasswordHasher{params: argon2id.DefaultParams}
}

func (h PasswordHasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func (h PasswordHasher) Verify(password, hash string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return match, nil
}
