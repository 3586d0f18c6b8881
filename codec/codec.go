// Package codec provides the URL-safe text encoding used for token segments.
package codec

import (
	"encoding/base64"
	"fmt"
)

// ErrDecode is returned for input outside the codec's alphabet or with
// broken padding. The token layer wraps it into its own invalid-token error.
var ErrDecode = fmt.Errorf("codec: malformed input")

// Base64URL encodes with the unpadded URL-safe base64 alphabet, so segments
// never need percent-encoding in a URL path. Encode and Decode are exact
// inverses for every byte sequence.
type Base64URL struct{}

// Encode renders b as unpadded URL-safe base64.
func (Base64URL) Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode reverses Encode. Padded or out-of-alphabet input fails with
// ErrDecode.
func (Base64URL) Decode(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}
