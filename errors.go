package signet

import "errors"

var (
	// ErrTokenInvalid is returned when a token string does not have the
	// three-segment structure, or when a segment cannot be decoded into a
	// JSON object. Codec-level decode failures are always wrapped into this
	// error before surfacing.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrSignature is returned when the signature segment does not verify
	// against the signing input under the configured signer.
	ErrSignature = errors.New("token signature mismatch")
	// ErrTokenExpired is returned when the exp claim is at or before the
	// current time.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenNotActive is returned when the nbf claim is after the current
	// time.
	ErrTokenNotActive = errors.New("token not yet active")
	// ErrTokenRevoked is returned when a revocation marker exists for the
	// token's id.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrRefreshExpired is returned by Refresh when the token's issued-at
	// plus the refresh window is at or before the current time.
	ErrRefreshExpired = errors.New("token refresh window expired")
	// ErrStoreUnavailable wraps revocation store backend failures. It never
	// maps to a token-validity outcome.
	ErrStoreUnavailable = errors.New("revocation store unavailable")
)

// TokenError wraps one of the sentinel errors above together with the
// fully-parsed token, when one could be reconstructed. Callers match the kind
// with errors.Is and recover the claims with errors.As:
//
//	var terr *signet.TokenError
//	if errors.As(err, &terr) && terr.Token != nil {
//		log.Println("rejected token for", terr.Token.Subject())
//	}
//
// Parse attaches the token for expiry, not-before, and revocation failures;
// Refresh attaches it for refresh-window failures. Structural and signature
// failures carry no token because none could be trusted into existence.
type TokenError struct {
	Err   error
	Token *Token
}

func (e *TokenError) Error() string { return e.Err.Error() }

func (e *TokenError) Unwrap() error { return e.Err }
