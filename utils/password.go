package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword hashes a shopper's password for the users table. The encoded
// form embeds the argon2 parameters, so they can be tuned later without
// invalidating stored hashes.
func HashPassword(password string) (string, error) {
	cfg := argon2.DefaultConfig()
	encoded, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword checks a login attempt against the stored encoded hash.
func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
