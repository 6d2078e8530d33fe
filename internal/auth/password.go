package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// SecretVerifier checks login attempts against the admin passphrase.
// Only a bcrypt hash of the passphrase is retained.
type SecretVerifier struct {
	hash []byte
}

// NewSecretVerifier hashes secret with the given bcrypt cost.
func NewSecretVerifier(secret string, cost int) (*SecretVerifier, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(prehash(secret), cost)
	if err != nil {
		return nil, err
	}
	return &SecretVerifier{hash: hash}, nil
}

// Matches reports whether candidate equals the admin passphrase.
func (v *SecretVerifier) Matches(candidate string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, prehash(candidate)) == nil
}

// bcrypt only reads 72 bytes; digest first so long passphrases compare in full.
func prehash(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return []byte(hex.EncodeToString(sum[:]))
}
