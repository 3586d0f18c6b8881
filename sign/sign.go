// Package sign provides signing strategies for token signatures: HMAC-SHA2
// variants for production use and a legacy fast-digest variant kept for
// compatibility with deployments that signed with it.
package sign

import (
	"github.com/golang-jwt/jwt/v5"
)

// HMAC signs with an HMAC-SHA2 method, delegating the raw signature
// computation to golang-jwt's SigningMethodHMAC so the byte output matches
// the corresponding JWS algorithm. Verification is constant-time (hmac
// internally compares with subtle). Safe for concurrent use.
type HMAC struct {
	method *jwt.SigningMethodHMAC
	secret []byte
}

// NewHS256 returns an HMAC-SHA256 signer. This is the recommended default.
func NewHS256(secret []byte) *HMAC { return newHMAC(jwt.SigningMethodHS256, secret) }

// NewHS384 returns an HMAC-SHA384 signer.
func NewHS384(secret []byte) *HMAC { return newHMAC(jwt.SigningMethodHS384, secret) }

// NewHS512 returns an HMAC-SHA512 signer.
func NewHS512(secret []byte) *HMAC { return newHMAC(jwt.SigningMethodHS512, secret) }

func newHMAC(method *jwt.SigningMethodHMAC, secret []byte) *HMAC {
	return &HMAC{method: method, secret: append([]byte(nil), secret...)}
}

// Sign computes the deterministic signature for message.
func (h *HMAC) Sign(message []byte) ([]byte, error) {
	return h.method.Sign(string(message), h.secret)
}

// Verify reports whether signature matches Sign(message).
func (h *HMAC) Verify(message, signature []byte) bool {
	return h.method.Verify(string(message), signature, h.secret) == nil
}

// Secret returns a copy of the raw key material.
func (h *HMAC) Secret() []byte {
	return append([]byte(nil), h.secret...)
}
