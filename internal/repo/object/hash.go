package object

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/zeebo/xxh3"
	"lukechampine.com/blake3"

	"github.com/keshon/gitlet/internal/errors"
)

// Hasher computes object IDs. The algorithm is fixed per repository.
type Hasher struct {
	name string
	sum  func([]byte) []byte
}

// NewHasher returns the hasher for algo: "sha1", "sha256", "blake3" or "xxh3".
// xxh3 is fast but not collision resistant against adversarial input.
func NewHasher(algo string) (Hasher, error) {
	name := strings.ToLower(strings.TrimSpace(algo))
	switch name {
	case "sha1":
		return Hasher{name: name, sum: func(b []byte) []byte { s := sha1.Sum(b); return s[:] }}, nil
	case "sha256":
		return Hasher{name: name, sum: func(b []byte) []byte { s := sha256.Sum256(b); return s[:] }}, nil
	case "blake3":
		return Hasher{name: name, sum: func(b []byte) []byte { s := blake3.Sum256(b); return s[:] }}, nil
	case "xxh3":
		return Hasher{name: name, sum: func(b []byte) []byte { s := xxh3.Hash128(b).Bytes(); return s[:] }}, nil
	}
	return Hasher{}, errors.Newf(errors.ErrInvalidInput, "Unknown hash algorithm %q.", algo)
}

// MustHasher is NewHasher for algorithm names known to be valid.
func MustHasher(algo string) Hasher {
	h, err := NewHasher(algo)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Hasher) Name() string { return h.name }

// Sum returns the lowercase hex digest of data.
func (h Hasher) Sum(data []byte) string {
	return hex.EncodeToString(h.sum(data))
}

// HexLen is the length of a full ID produced by this hasher.
func (h Hasher) HexLen() int {
	return 2 * len(h.sum(nil))
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
