package service

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way, salted bcrypt hash from a plaintext
// password. The output embeds salt and cost, so verification needs nothing
// beyond the hash itself.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash. A malformed hash is
// treated as a mismatch, never an error.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
