// Package signet issues, parses, refreshes, and revokes compact signed tokens
// that carry a JSON claim set between a producer and a consumer sharing a
// secret.
//
// The package is the public surface. It exposes [Manager], [Config], [Token],
// the [Signer], [Codec], and [RevocationStore] capability interfaces, and the
// error taxonomy. Concrete strategies live in narrow subpackages: sign
// (HMAC and legacy fast-digest signers), codec (URL-safe base64), and store
// (in-memory and Redis revocation stores).
//
// # Architecture boundaries
//
//   - Subpackages never import signet (no import cycles); they satisfy the
//     root interfaces structurally.
//   - A Manager holds configuration and collaborator references only, never
//     per-call state. Issue, Parse, Refresh, Revoke, and Unrevoke are safe for
//     concurrent use when the configured collaborators are.
//   - The only I/O a Manager performs is against its RevocationStore; Issue
//     and Refresh touch nothing but the injected clock.
//
// # Wire format
//
// A token is three dot-separated URL-safe segments:
//
//	codec.Encode(JSON(headers)) "." codec.Encode(JSON(claims)) "." codec.Encode(signature)
//
// where the signature is computed over the first two segments joined by a dot.
package signet
