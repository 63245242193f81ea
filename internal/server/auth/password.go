package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
)

// SaltSize matches the HMAC-SHA512 block size, the key length a fresh
// HMAC-SHA512 key would have.
const SaltSize = 128

// PasswordHash is what gets stored for a user: Hash = HMAC-SHA512(Salt, password).
type PasswordHash struct {
	Hash []byte
	Salt []byte
}

// HashPassword generates a fresh random salt and computes the keyed MAC of
// password under it. Every call yields a different salt.
func HashPassword(password string) (PasswordHash, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return PasswordHash{}, fmt.Errorf("generating salt: %w", err)
	}
	return PasswordHash{Hash: computeHash(password, salt), Salt: salt}, nil
}

// VerifyPassword recomputes the MAC with the stored salt and compares it with
// the stored hash.
func VerifyPassword(password string, hash, salt []byte) bool {
	return hmac.Equal(computeHash(password, salt), hash)
}

func computeHash(password string, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
