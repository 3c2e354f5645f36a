// Package credential checks presented secrets against stored bcrypt hashes.
package credential

import "golang.org/x/crypto/bcrypt"

// Hash derives a bcrypt hash for storage.
func Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether secret matches the stored hash. Any comparison
// error, including a malformed or empty hash, is a non-match: the check
// fails closed.
func Verify(storedHash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(secret)) == nil
}
