package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	Cost      = bcrypt.DefaultCost
	MinLength = 8
)

var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrMismatch      = errors.New("password does not match")
)

// Hash returns the bcrypt hash stored for a staff account.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports ErrMismatch when plain does not produce hash.
func Verify(plain, hash string) error {
	if plain == "" || hash == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}

	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
