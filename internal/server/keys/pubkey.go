// Package keys validates secp256k1 public keys supplied as hex strings.
package keys

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/blake2b"
)

// ErrSeparator is returned for keys carrying ':' separators, as printed by
// tools that render keys as "02:ab:cd:...".
var ErrSeparator = errors.New(`must not contain non-hexadecimal characters like ":"`)

// Validate parses candidate as a hex-encoded secp256k1 point. Compressed
// (33 bytes), uncompressed (65 bytes) and hybrid encodings are accepted.
// The returned key is only proof of validity; callers store the original
// string.
func Validate(candidate string) (*secp256k1.PublicKey, error) {
	if strings.Contains(candidate, ":") {
		return nil, ErrSeparator
	}

	raw, err := hex.DecodeString(candidate)
	if err != nil {
		return nil, fmt.Errorf("malformed hex: %w", err)
	}

	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// Fingerprint is a short, stable digest of a key for log lines.
func Fingerprint(key string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(key)))
	return hex.EncodeToString(sum[:8])
}
