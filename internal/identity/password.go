package identity

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing time for demo-grade security; accounts here
// are sample data, not real customers.
const bcryptCost = bcrypt.DefaultCost

// HashPassword generates a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
