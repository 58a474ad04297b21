package utils

import "golang.org/x/crypto/bcrypt"

var bcryptCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// UseMinPasswordCost lowers the bcrypt cost. Tests only.
func UseMinPasswordCost() {
	bcryptCost = bcrypt.MinCost
}
