package sign

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// XX64 signs with a keyed xxhash-64 digest: secret || message || secret. It
// is fast and deterministic but not cryptographic; it only detects accidental
// tampering, not a motivated forger. Kept for compatibility with installs
// that signed with the fast digest. New deployments should use [NewHS256].
type XX64 struct {
	secret []byte
}

// NewXX64 returns the legacy fast-digest signer.
func NewXX64(secret []byte) *XX64 {
	return &XX64{secret: append([]byte(nil), secret...)}
}

// Sign returns the 8-byte big-endian digest of secret||message||secret.
func (x *XX64) Sign(message []byte) ([]byte, error) {
	d := xxhash.New()
	_, _ = d.Write(x.secret)
	_, _ = d.Write(message)
	_, _ = d.Write(x.secret)
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, d.Sum64())
	return out, nil
}

// Verify recomputes the digest and compares in constant time.
func (x *XX64) Verify(message, signature []byte) bool {
	want, _ := x.Sign(message)
	return subtle.ConstantTimeCompare(want, signature) == 1
}

// Secret returns a copy of the raw key material.
func (x *XX64) Secret() []byte {
	return append([]byte(nil), x.secret...)
}
