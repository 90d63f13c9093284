package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword computes a salted bcrypt hash of the plaintext password.
// bcrypt generates a fresh salt on every call, so hashing the same password
// twice produces different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash. The comparison is constant-time; a malformed hash simply yields false.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
