package seeder

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/google/uuid"
)

// HashPassword matches the socio login check: hex(sha512(password || salt)).
func HashPassword(password string, salt []byte) string {
	h := sha512.New()
	h.Write([]byte(password))
	h.Write(salt)
	return hex.EncodeToString(h.Sum(nil))
}

func newSalt() string {
	return uuid.NewString()
}
