package hash

import "golang.org/x/crypto/bcrypt"

// Password hashes the plaintext with bcrypt. Every call salts anew, so two
// hashes of the same input never match.
func Password(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// CheckPassword reports whether password reproduces digest. A malformed
// digest is just a mismatch, never an error.
func CheckPassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
