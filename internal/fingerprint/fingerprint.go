// Package fingerprint computes the hashes that decide whether a cached
// generation is still valid.
package fingerprint

import (
	"crypto/md5" // #nosec G501 -- cache fingerprint, not a security boundary
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ContentHasher identifies source bytes. Implementations must return the same
// digest for identical input and a different one for any byte difference.
type ContentHasher interface {
	Hash(data []byte) string
}

// HasherFunc adapts a function to ContentHasher.
type HasherFunc func([]byte) string

// Hash implements ContentHasher.
func (f HasherFunc) Hash(data []byte) string { return f(data) }

// MD5Hasher is the default content hasher: lowercase hex MD5.
type MD5Hasher struct{}

// Hash implements ContentHasher.
func (MD5Hasher) Hash(data []byte) string {
	sum := md5.Sum(data) // #nosec G401
	return hex.EncodeToString(sum[:])
}

// ConfigHash returns the hex MD5 of v's JSON encoding. encoding/json writes
// struct fields in declaration order and map keys sorted, so equal values
// always produce the same digest.
func ConfigHash(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode configuration: %w", err)
	}
	return MD5Hasher{}.Hash(data), nil
}
