package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// HashText hashes a buffer the same way source.NewFile does.
func HashText(text string) Digest {
	return sha256.Sum256([]byte(text))
}

// Combine строит ключ: H( content || part1 || part2 ... ).
func Combine(content Digest, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports an unset digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
