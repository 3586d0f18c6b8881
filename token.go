package signet

import (
	"encoding/json"
	"time"
)

// Token is an immutable issued or parsed token: one Headers value, one Claims
// value, and a capability reference back to the Manager that produced it. The
// reference exists so Encode and Refresh can re-derive signing context; it is
// not an ownership relation. Tokens have no persistence of their own — only a
// revocation marker, keyed by jti, outlives them.
type Token struct {
	headers Headers
	claims  Claims
	mgr     *Manager
	raw     string // wire text for parsed tokens; empty until first Encode otherwise
}

// ID returns the jti claim. Always present on issued tokens.
func (t *Token) ID() string { return t.claims.str(ClaimID) }

// Subject returns the sub claim, or "" when absent.
func (t *Token) Subject() string { return t.claims.str(ClaimSubject) }

// Issuer returns the iss claim, or "" when absent.
func (t *Token) Issuer() string { return t.claims.str(ClaimIssuer) }

// ExpiresAt returns the exp claim as a time, reporting whether it is set.
func (t *Token) ExpiresAt() (time.Time, bool) { return t.epochClaim(ClaimExpiry) }

// IssuedAt returns the iat claim as a time, reporting whether it is set.
func (t *Token) IssuedAt() (time.Time, bool) { return t.epochClaim(ClaimIssuedAt) }

// NotBefore returns the nbf claim as a time, reporting whether it is set.
func (t *Token) NotBefore() (time.Time, bool) { return t.epochClaim(ClaimNotBefore) }

func (t *Token) epochClaim(key string) (time.Time, bool) {
	sec, ok := t.claims.epoch(key)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}

// Get returns an arbitrary claim value.
func (t *Token) Get(key string) (any, bool) {
	v, ok := t.claims[key]
	return v, ok
}

// Claims returns a copy of the claim set. Mutating the copy does not affect
// the token.
func (t *Token) Claims() Claims { return t.claims.clone() }

// Headers returns a copy of the header set.
func (t *Token) Headers() Headers { return t.headers.clone() }

// SigningInput returns the exact byte string the signature covers: the
// encoded header segment, a dot, and the encoded claims segment.
func (t *Token) SigningInput() ([]byte, error) {
	seg0, seg1, err := t.payloadSegments()
	if err != nil {
		return nil, err
	}
	return []byte(seg0 + "." + seg1), nil
}

// Encode renders the token as wire text. For parsed tokens the original text
// is returned unchanged, so the received signature stays valid byte for byte.
func (t *Token) Encode() (string, error) {
	if t.raw != "" {
		return t.raw, nil
	}
	seg0, seg1, err := t.payloadSegments()
	if err != nil {
		return "", err
	}
	input := seg0 + "." + seg1
	sig, err := t.mgr.signer.Sign([]byte(input))
	if err != nil {
		return "", err
	}
	return input + "." + t.mgr.codec.Encode(sig), nil
}

func (t *Token) payloadSegments() (string, string, error) {
	hb, err := json.Marshal(t.headers)
	if err != nil {
		return "", "", err
	}
	cb, err := json.Marshal(t.claims)
	if err != nil {
		return "", "", err
	}
	return t.mgr.codec.Encode(hb), t.mgr.codec.Encode(cb), nil
}
