package signet

import (
	"context"
	"testing"
	"time"

	"github.com/signet-go/signet/store"
)

// FuzzParse exercises Parse with arbitrary token strings.
// Goal: no panics; invalid inputs must be rejected with errors.
func FuzzParse(f *testing.F) {
	clock := func() time.Time { return time.Unix(1000, 0) }
	mgr, err := NewManager(Config{
		Secret:     []byte("s3cret"),
		TTL:        60 * time.Minute,
		RefreshTTL: 60 * time.Minute,
		Store:      store.NewMemoryWithClock(clock),
		Clock:      clock,
	})
	if err != nil {
		f.Fatal(err)
	}

	tok, err := mgr.Issue(Claims{"sub": "42"}, Headers{"typ": "JWT"})
	if err != nil {
		f.Fatal(err)
	}
	valid, err := tok.Encode()
	if err != nil {
		f.Fatal(err)
	}

	f.Add(valid)
	f.Add("")
	f.Add("not.a.token")
	f.Add("..")
	f.Add("a.b.c.d")
	f.Add("eyJ0eXAiOiJKV1QifQ.eyJzdWIiOiI0MiJ9.AAAA")
	f.Add("bnVsbA.bnVsbA.bnVsbA")

	f.Fuzz(func(t *testing.T, input string) {
		// Must not panic. Errors are expected for malformed input.
		parsed, err := mgr.Parse(context.Background(), input)
		if err != nil {
			return
		}
		if parsed == nil {
			t.Fatal("Parse returned nil token without error")
		}
		if _, err := parsed.Encode(); err != nil {
			t.Fatalf("accepted token failed to re-encode: %v", err)
		}
	})
}
