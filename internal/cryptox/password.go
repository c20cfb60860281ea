// Package cryptox implements password hashing for the credential store.
//
// Hashes use scrypt, a memory-hard key-derivation function, with a random
// per-password salt. The encoded form is "saltHex:hashHex", which is
// self-describing enough for verification: the salt is embedded and the
// cost parameters are fixed process-wide.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. N is the CPU/memory cost (must be a power of two),
// r the block size, p the parallelism factor.
const (
	scryptN = 16384
	scryptR = 8
	scryptP = 1

	saltSize = 16
	keySize  = 64
)

// HashPassword derives a salted scrypt hash of the given password and
// returns it encoded as "saltHex:hashHex".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the encoded hash. It
// returns false for malformed encodings and never leaks where a mismatch
// occurs: the final comparison is constant-time.
func VerifyPassword(password, encoded string) bool {
	saltHex, hashHex, ok := strings.Cut(encoded, ":")
	if !ok || saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	actual, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return false
	}
	if len(actual) != len(expected) {
		return false
	}

	return subtle.ConstantTimeCompare(actual, expected) == 1
}
