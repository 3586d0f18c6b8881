package signet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager orchestrates the token lifecycle: issuance, parsing with signature,
// temporal, and revocation checks, refresh re-issuance, and revocation
// bookkeeping. A Manager holds configuration only and is safe for concurrent
// use when its collaborators are.
type Manager struct {
	ttl        time.Duration
	refreshTTL time.Duration
	issuer     string
	prefix     string
	randomID   bool

	signer Signer
	codec  Codec
	store  RevocationStore
	now    func() time.Time
	log    *zap.Logger

	metrics metrics
}

// NewManager validates cfg, fills defaults (HMAC-SHA256 signer from
// cfg.Secret, URL-safe base64 codec, in-process revocation store), and
// returns a ready Manager.
func NewManager(cfg Config) (*Manager, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Manager{
		ttl:        cfg.TTL,
		refreshTTL: cfg.RefreshTTL,
		issuer:     cfg.Issuer,
		prefix:     cfg.BlacklistPrefix,
		randomID:   cfg.RandomID,
		signer:     cfg.Signer,
		codec:      cfg.Codec,
		store:      cfg.Store,
		now:        cfg.Clock,
		log:        cfg.Logger,
	}, nil
}

// Issue builds a token from default claims overlaid with the caller's claims
// (caller values win), derives the jti, and returns the token. No I/O beyond
// a clock read. claims and headers may be nil.
func (m *Manager) Issue(claims Claims, headers Headers) (*Token, error) {
	now := m.now().Unix()
	merged := Claims{
		ClaimSubject:   "1",
		ClaimIssuer:    m.issuer,
		ClaimIssuedAt:  now,
		ClaimExpiry:    now + int64(m.ttl/time.Second),
		ClaimNotBefore: now,
	}
	for k, v := range claims {
		merged[k] = v
	}
	hdrs := headers.clone()

	id, err := m.tokenID(merged, hdrs)
	if err != nil {
		return nil, fmt.Errorf("derive token id: %w", err)
	}
	merged[ClaimID] = id

	m.metrics.inc(MetricIssued)
	m.log.Debug("token issued", zap.String("jti", id), zap.String("sub", merged.str(ClaimSubject)))
	return &Token{headers: hdrs, claims: merged, mgr: m}, nil
}

// tokenID binds the id to the exact content being signed: the URL-safe
// encoding of the serialized (claims, headers) pair, keyed with the signer's
// secret. Identical content under the same secret always yields the same id.
func (m *Manager) tokenID(claims Claims, headers Headers) (string, error) {
	if m.randomID {
		return uuid.NewString(), nil
	}
	payload, err := json.Marshal([2]any{claims, headers})
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(m.codec.Encode(payload)))
	h.Write(m.signer.Secret())
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Parse reconstructs a token from wire text, running the checks in fixed
// order: structure, signature, expiry, not-before, revocation. The first
// failing check determines the error; later checks are not evaluated.
// Temporal and revocation failures attach the parsed token via [TokenError].
func (m *Manager) Parse(ctx context.Context, text string) (*Token, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return nil, m.reject(MetricParseInvalid, fmt.Errorf("%w: expected 3 segments, got %d", ErrTokenInvalid, len(parts)))
	}

	headers, err := decodeObject[Headers](m.codec, parts[0])
	if err != nil {
		return nil, m.reject(MetricParseInvalid, fmt.Errorf("%w: header segment: %v", ErrTokenInvalid, err))
	}
	claims, err := decodeObject[Claims](m.codec, parts[1])
	if err != nil {
		return nil, m.reject(MetricParseInvalid, fmt.Errorf("%w: claims segment: %v", ErrTokenInvalid, err))
	}
	sig, err := m.codec.Decode(parts[2])
	if err != nil {
		return nil, m.reject(MetricParseInvalid, fmt.Errorf("%w: signature segment: %v", ErrTokenInvalid, err))
	}

	if !m.signer.Verify([]byte(parts[0]+"."+parts[1]), sig) {
		return nil, m.reject(MetricParseSignature, ErrSignature)
	}

	tok := &Token{headers: headers, claims: claims, mgr: m, raw: text}
	now := m.now().Unix()

	if exp, ok := claims.epoch(ClaimExpiry); ok && exp <= now {
		return nil, m.reject(MetricParseExpired, &TokenError{Err: ErrTokenExpired, Token: tok})
	}
	if nbf, ok := claims.epoch(ClaimNotBefore); ok && nbf > now {
		return nil, m.reject(MetricParseNotActive, &TokenError{Err: ErrTokenNotActive, Token: tok})
	}

	revoked, err := m.store.Contains(ctx, m.blacklistKey(tok))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if revoked {
		return nil, m.reject(MetricParseRevoked, &TokenError{Err: ErrTokenRevoked, Token: tok})
	}

	m.metrics.inc(MetricParsed)
	return tok, nil
}

// Refresh mints a replacement token from an existing one: it strips the
// temporal claims and re-issues the remainder with the original headers,
// anchoring a fresh validity window to now. Unless force is set, a token
// whose issued-at plus the refresh window has elapsed is rejected with
// [ErrRefreshExpired].
func (m *Manager) Refresh(token *Token, force bool) (*Token, error) {
	if token == nil {
		return nil, fmt.Errorf("%w: nil token", ErrTokenInvalid)
	}
	if !force {
		if iat, ok := token.claims.epoch(ClaimIssuedAt); ok {
			if iat+int64(m.refreshTTL/time.Second) <= m.now().Unix() {
				m.metrics.inc(MetricRefreshExpired)
				return nil, &TokenError{Err: ErrRefreshExpired, Token: token}
			}
		}
	}
	claims := token.Claims()
	delete(claims, ClaimExpiry)
	delete(claims, ClaimIssuedAt)
	delete(claims, ClaimNotBefore)

	fresh, err := m.Issue(claims, token.Headers())
	if err != nil {
		return nil, err
	}
	m.metrics.inc(MetricRefreshed)
	return fresh, nil
}

// Revoke writes a revocation marker for jti. The marker records the
// revocation time and self-expires once the refresh window has passed, after
// which the token could not be refreshed anyway.
func (m *Manager) Revoke(ctx context.Context, jti string) error {
	if err := m.store.Save(ctx, m.prefix+jti, m.now().Unix(), m.refreshTTL); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	m.metrics.inc(MetricRevoked)
	m.log.Debug("token revoked", zap.String("jti", jti))
	return nil
}

// Unrevoke deletes the revocation marker for jti. A missing marker is not an
// error.
func (m *Manager) Unrevoke(ctx context.Context, jti string) error {
	if err := m.store.Delete(ctx, m.prefix+jti); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	m.metrics.inc(MetricUnrevoked)
	return nil
}

// Revoked reports whether a revocation marker currently exists for jti.
func (m *Manager) Revoked(ctx context.Context, jti string) (bool, error) {
	found, err := m.store.Contains(ctx, m.prefix+jti)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return found, nil
}

// blacklistKey keys the revocation lookup by jti, falling back to the full
// wire text for foreign tokens that carry no id.
func (m *Manager) blacklistKey(t *Token) string {
	if id := t.ID(); id != "" {
		return m.prefix + id
	}
	return m.prefix + t.raw
}

func (m *Manager) reject(id MetricID, err error) error {
	m.metrics.inc(id)
	m.log.Warn("token rejected", zap.String("reason", err.Error()))
	return err
}

// decodeObject decodes a wire segment and unmarshals it into a JSON object.
// Non-object payloads (including JSON null) are rejected.
func decodeObject[T ~map[string]any](c Codec, segment string) (T, error) {
	var out T
	b, err := c.Decode(segment)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	if out == nil {
		return out, errors.New("not a JSON object")
	}
	return out, nil
}
