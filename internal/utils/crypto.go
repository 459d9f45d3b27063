package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

func Hash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// HashAll hashes the parts in order. Parts are length-prefixed so ("ab","c") and ("a","bc") differ.
func HashAll(parts ...string) string {
	hash := sha256.New()
	for _, p := range parts {
		var size [8]byte
		n := len(p)
		for i := range size {
			size[i] = byte(n >> (8 * i))
		}
		hash.Write(size[:])
		hash.Write([]byte(p))
	}
	return hex.EncodeToString(hash.Sum(nil))
}
