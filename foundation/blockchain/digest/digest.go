// Package digest provides the canonical hashing used by every part of the
// ledger. All records are hashed through this package so the same logical
// value always produces the same digest.
package digest

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroHash represents a hash code of zeros. It is the parent hash of the
// genesis block.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Size is the number of bytes in a digest.
const Size = sha256.Size

// =============================================================================

// Hash returns a unique string for the value. The value is serialized as
// JSON, so struct field order and the formatting of every field must be
// deterministic for the types passed in.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// Sum returns the raw digest for the value. This is used in hot paths that
// need to compare the hash numerically instead of as a string.
func Sum(value any) [Size]byte {
	data, err := json.Marshal(value)
	if err != nil {
		return [Size]byte{}
	}

	return sha256.Sum256(data)
}

// Encode converts a raw digest to its hex-encoded string form.
func Encode(sum [Size]byte) string {
	return hexutil.Encode(sum[:])
}

// Decode converts a hex-encoded digest back into raw bytes.
func Decode(hash string) ([]byte, error) {
	return hexutil.Decode(hash)
}

// Bytes returns the digest of the raw bytes as a hex-encoded string.
func Bytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}
