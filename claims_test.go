package signet

import "testing"

func TestClaimsEpochCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int64", int64(4600), 4600, true},
		{"float64 from JSON", float64(4600), 4600, true},
		{"int", int(4600), 4600, true},
		{"int32", int32(4600), 4600, true},
		{"uint64", uint64(4600), 4600, true},
		{"string is not a timestamp", "4600", 0, false},
		{"bool is not a timestamp", true, 0, false},
	}
	for _, tc := range cases {
		c := Claims{"exp": tc.in}
		got, ok := c.epoch("exp")
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%s: epoch = (%d, %v), want (%d, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
	if _, ok := (Claims{}).epoch("exp"); ok {
		t.Fatal("epoch reported a missing claim as present")
	}
}

func TestCloneOfNilMaps(t *testing.T) {
	var c Claims
	cloned := c.clone()
	if cloned == nil {
		t.Fatal("clone of nil Claims must be an empty, writable map")
	}
	cloned["k"] = "v"

	var h Headers
	hc := h.clone()
	if hc == nil {
		t.Fatal("clone of nil Headers must be an empty, writable map")
	}
}
