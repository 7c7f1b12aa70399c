// Package cryptox implements the password key derivation used by the
// credential store.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"

	"github.com/Berkcanaskin/stellar/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Derivation parameters. Changing these invalidates every stored hash,
	// so treat them as part of the on-disk format.
	pbkdf2Iterations = 100_000
	derivedKeySize   = 64
	saltSize         = 16
)

// NewSalt returns a fresh random per-user salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(saltSize)
}

// DerivePasswordKey derives the stored verifier for a password and salt
// using PBKDF2-SHA512.
func DerivePasswordKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, pbkdf2Iterations, derivedKeySize, sha512.New)
}

// VerifyPassword recomputes the derivation and compares it to the stored
// verifier in constant time. The derivation is always performed, so the
// cost of a failed check does not depend on why it failed.
func VerifyPassword(password, salt, verifier []byte) bool {
	candidate := DerivePasswordKey(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
