package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of plain. The cost comes from
// configuration; values outside bcrypt's supported range fall back to the
// library default rather than failing the signup.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash. The
// comparison is constant-time inside the library.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
