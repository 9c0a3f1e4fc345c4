package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the cost the rest of the deployment assumes.
const DefaultBcryptCost = 9

// PasswordHasher wraps bcrypt with a fixed cost factor.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt digest of a plaintext password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Verify reports whether the plaintext matches the stored digest.
// bcrypt's comparison is constant-time.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
