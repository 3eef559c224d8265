package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates anything past 72 bytes, so the policy caps
// passwords there instead of hashing a prefix.
const (
	bcryptCost      = 12
	maxPasswordSize = 72
)

// ErrInvalidPassword is returned when a password falls outside the accepted
// length range.
var ErrInvalidPassword = errors.New("password must be 1-72 characters")

// PasswordHasher enforces the account password policy and wraps bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the standard cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// CheckPolicy rejects empty passwords and passwords longer than bcrypt can
// consume.
func (h *PasswordHasher) CheckPolicy(password string) error {
	if password == "" || len(password) > maxPasswordSize {
		return ErrInvalidPassword
	}
	return nil
}

// Hash applies the policy, then returns the bcrypt hash of the password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if err := h.CheckPolicy(password); err != nil {
		return "", err
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the password matches the stored hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
