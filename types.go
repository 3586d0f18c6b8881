package signet

import (
	"context"
	"maps"
	"time"
)

// Reserved claim keys. All timing claims hold integer seconds since epoch.
const (
	ClaimSubject   = "sub"
	ClaimIssuer    = "iss"
	ClaimIssuedAt  = "iat"
	ClaimExpiry    = "exp"
	ClaimNotBefore = "nbf"
	ClaimID        = "jti"
)

// Claims is the JSON claim set carried in a token payload. Values must be
// JSON-compatible (string, number, bool, nil, nested map/slice). The five
// reserved timing/identity keys above are filled with defaults by
// [Manager.Issue]; caller-supplied values win on collision.
type Claims map[string]any

// Headers is caller-supplied metadata carried alongside claims. Headers are
// covered by the signature but not by temporal or revocation checks.
type Headers map[string]any

func (c Claims) clone() Claims {
	if c == nil {
		return Claims{}
	}
	return maps.Clone(c)
}

func (h Headers) clone() Headers {
	if h == nil {
		return Headers{}
	}
	return maps.Clone(h)
}

// epoch reads a claim as integer epoch seconds. JSON decoding produces
// float64 for numbers, fresh issuance stores int64; both must read back.
func (c Claims) epoch(key string) (int64, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}

func (c Claims) str(key string) string {
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Signer computes and verifies deterministic signatures under a shared
// secret. Implementations must be safe for concurrent use. Verify must use a
// constant-time comparison. Secret exposes the raw key material; the Manager
// uses it only to bind content-derived token ids to the key (see
// [Manager.Issue]).
type Signer interface {
	Sign(message []byte) ([]byte, error)
	Verify(message, signature []byte) bool
	Secret() []byte
}

// Codec is a reversible transform between raw bytes and a URL-safe text
// segment. Decode must reject input outside the alphabet with an error; the
// Manager wraps any such failure into [ErrTokenInvalid].
type Codec interface {
	Encode(b []byte) string
	Decode(s string) ([]byte, error)
}

// RevocationStore persists self-expiring revocation markers under opaque
// keys. No ordering or iteration is required: every marker is independent.
// Implementations inherit their own latency and consistency model; callers
// bound waits through ctx.
type RevocationStore interface {
	Contains(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, key string, value int64, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
