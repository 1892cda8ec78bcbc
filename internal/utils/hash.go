package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Hasher produces keyed digests of identifiers such as email addresses and
// browser client ids, so usage rows can be matched without storing them in
// the clear.
type Hasher struct {
	key [32]byte
}

func NewHasher(secret string) *Hasher {
	return &Hasher{key: sha256.Sum256([]byte(secret))}
}

func (h *Hasher) Hash(value string) string {
	if value == "" {
		return ""
	}
	mac, err := blake2b.New256(h.key[:])
	if err != nil {
		// only possible for keys longer than 64 bytes
		panic(err)
	}
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
