package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltRandomBytes = 16
	digestBytes     = 32
)

// Hasher derives and verifies password digests with a per-user salt. The
// digest is deterministic for a given password+salt pair; the salt is
// generated once at signup and reused for every verification afterwards.
type Hasher struct {
	iterations int
}

// NewHasher builds a hasher with the configured PBKDF2 iteration count.
func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = 600000
	}
	return &Hasher{iterations: iterations}
}

// HashPassword produces the one-way digest of password and salt.
func (h *Hasher) HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, digestBytes, sha256.New)
	return hex.EncodeToString(key)
}

// GenerateSalt returns a fresh unpredictable salt, unique per call.
func (h *Hasher) GenerateSalt() string {
	buf := make([]byte, saltRandomBytes)
	_, _ = rand.Read(buf)
	return uuid.NewString() + hex.EncodeToString(buf)
}

// Verify recomputes the digest and compares it in constant time. A wrong
// password yields false, never an error.
func (h *Hasher) Verify(password, salt, storedHash string) bool {
	computed := h.HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
