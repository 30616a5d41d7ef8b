package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword tüm principal'lar için bcrypt kullanır. Eski sistemdeki
// "hashed_" önekli placeholder hiçbir koşulda kabul edilmez.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
