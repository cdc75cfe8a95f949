package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies account secrets with bcrypt.
// The zero cost falls back to bcrypt's default (10).
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given work factor. Costs below
// bcrypt's minimum are replaced with the default cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of the given password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. bcrypt performs
// a constant-time comparison internally.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is a valid bcrypt hash of an unguessable value. Login compares
// against it when no account matches the email so both failure paths pay
// the same hashing cost.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// VerifyDummy burns one bcrypt comparison and always reports false.
func (h *PasswordHasher) VerifyDummy(password string) bool {
	bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
	return false
}
