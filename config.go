package signet

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/signet-go/signet/codec"
	"github.com/signet-go/signet/sign"
	"github.com/signet-go/signet/store"
)

const (
	// DefaultTTL is the validity window applied when Config.TTL is zero.
	DefaultTTL = 60 * time.Minute
	// DefaultRefreshTTL is the refresh window applied when Config.RefreshTTL
	// is zero: two weeks past issuance.
	DefaultRefreshTTL = 14 * 24 * time.Hour
	// DefaultBlacklistPrefix namespaces revocation marker keys.
	DefaultBlacklistPrefix = "jwt.blacklist:"
)

// Config configures a [Manager]. Instances are validated and defaulted by
// [NewManager] and treated as immutable afterwards.
type Config struct {
	// TTL is the validity window: exp = iat + TTL. Zero means DefaultTTL.
	TTL time.Duration
	// RefreshTTL is the window past issuance during which Refresh may mint a
	// replacement token, and the lifetime of revocation markers. Zero means
	// DefaultRefreshTTL.
	RefreshTTL time.Duration
	// Issuer fills the iss claim default. May stay empty.
	Issuer string

	// Secret seeds the default HMAC-SHA256 signer when Signer is nil.
	Secret []byte
	// Signer overrides the default signing strategy.
	Signer Signer
	// Codec overrides the default URL-safe base64 codec.
	Codec Codec
	// Store overrides the default in-process revocation store.
	Store RevocationStore
	// BlacklistPrefix overrides DefaultBlacklistPrefix.
	BlacklistPrefix string

	// RandomID switches the jti claim from a content-derived digest to a
	// random UUID. Random ids are unlinkable across issuances but lose the
	// same-content-same-id property.
	RandomID bool

	// Clock supplies the current time. Defaults to time.Now. Tests inject a
	// fixed clock to pin the temporal checks.
	Clock func() time.Time
	// Logger receives debug/warn events. Defaults to zap.NewNop().
	Logger *zap.Logger
}

var (
	// ErrNoSigner is returned by NewManager when neither Signer nor Secret
	// is provided.
	ErrNoSigner = errors.New("signer or secret required")
	// ErrInvalidTTL is returned by NewManager on a negative validity or
	// refresh window.
	ErrInvalidTTL = errors.New("invalid TTL configuration")
)

func (c Config) withDefaults() (Config, error) {
	if c.TTL < 0 || c.RefreshTTL < 0 {
		return c, ErrInvalidTTL
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	if c.RefreshTTL == 0 {
		c.RefreshTTL = DefaultRefreshTTL
	}
	if c.Signer == nil {
		if len(c.Secret) == 0 {
			return c, ErrNoSigner
		}
		c.Signer = sign.NewHS256(c.Secret)
	}
	if c.Codec == nil {
		c.Codec = codec.Base64URL{}
	}
	if c.Store == nil {
		c.Store = store.NewMemory()
	}
	if c.BlacklistPrefix == "" {
		c.BlacklistPrefix = DefaultBlacklistPrefix
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c, nil
}
