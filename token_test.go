package signet

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestTokenImmutability(t *testing.T) {
	clock := &fixedClock{sec: 1000}
	mgr := newTestManager(t, clock)

	tok, err := mgr.Issue(Claims{"sub": "42"}, Headers{"typ": "JWT"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims := tok.Claims()
	claims["sub"] = "mutated"
	delete(claims, ClaimID)
	headers := tok.Headers()
	headers["typ"] = "mutated"

	if tok.Subject() != "42" {
		t.Fatal("mutating the Claims copy leaked into the token")
	}
	if tok.ID() == "" {
		t.Fatal("mutating the Claims copy removed jti from the token")
	}
	if tok.Headers()["typ"] != "JWT" {
		t.Fatal("mutating the Headers copy leaked into the token")
	}
}

func TestTokenAccessors(t *testing.T) {
	clock := &fixedClock{sec: 1000}
	mgr := newTestManager(t, clock, func(c *Config) { c.Issuer = "api" })

	tok, err := mgr.Issue(Claims{"sub": "42"}, nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if exp, ok := tok.ExpiresAt(); !ok || !exp.Equal(time.Unix(4600, 0)) {
		t.Fatalf("ExpiresAt = (%v, %v), want 4600", exp, ok)
	}
	if iat, ok := tok.IssuedAt(); !ok || !iat.Equal(time.Unix(1000, 0)) {
		t.Fatalf("IssuedAt = (%v, %v), want 1000", iat, ok)
	}
	if nbf, ok := tok.NotBefore(); !ok || !nbf.Equal(time.Unix(1000, 0)) {
		t.Fatalf("NotBefore = (%v, %v), want 1000", nbf, ok)
	}
	if tok.Issuer() != "api" {
		t.Fatalf("Issuer = %q, want api", tok.Issuer())
	}
	if _, ok := tok.Get("missing"); ok {
		t.Fatal("Get reported a missing claim as present")
	}
}

func TestSigningInputMatchesWireText(t *testing.T) {
	clock := &fixedClock{sec: 1000}
	mgr := newTestManager(t, clock)

	tok, err := mgr.Issue(Claims{"sub": "42"}, nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	text, err := tok.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	input, err := tok.SigningInput()
	if err != nil {
		t.Fatalf("SigningInput failed: %v", err)
	}
	if !strings.HasPrefix(text, string(input)+".") {
		t.Fatalf("wire text %q does not start with signing input %q", text, input)
	}
	if strings.Count(string(input), ".") != 1 {
		t.Fatalf("signing input must be exactly two segments, got %q", input)
	}
}

func TestEncodeOfParsedTokenPreservesWireText(t *testing.T) {
	clock := &fixedClock{sec: 1000}
	mgr := newTestManager(t, clock)

	tok, err := mgr.Issue(Claims{"sub": "42"}, nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	text, _ := tok.Encode()

	parsed, err := mgr.Parse(context.Background(), text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	again, err := parsed.Encode()
	if err != nil {
		t.Fatalf("Encode of parsed token failed: %v", err)
	}
	if again != text {
		t.Fatalf("re-encoding a parsed token changed the wire text:\n%q\n%q", text, again)
	}
}

func TestEncodeRejectsUnserializableClaims(t *testing.T) {
	clock := &fixedClock{sec: 1000}
	mgr := newTestManager(t, clock)

	if _, err := mgr.Issue(Claims{"bad": make(chan int)}, nil); err == nil {
		t.Fatal("Issue accepted a non-JSON claim value")
	}
}
