package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword generates a salted bcrypt hash of the cleartext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword compares a cleartext password against a stored hash.
// A non-nil error means the password does not match.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
