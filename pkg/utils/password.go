package utils

import "golang.org/x/crypto/bcrypt"

// Staff accounts only; patients sign in through LINE and carry no hash.
const passwordHashCost = 12

// HashPassword returns the bcrypt hash stored for a staff password.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	return string(hashed), err
}

// ComparePassword reports whether plain matches the stored hash.
func ComparePassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
