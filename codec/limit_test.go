package codec

import (
	"strings"
	"testing"
)

func TestLimitDecode(t *testing.T) {
	c := Limit{Inner: Msgpack{}, MaxDecode: 64}

	raw, err := c.Encode("small")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := c.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != "small" {
		t.Fatalf("Decode = %v", v)
	}

	big, err := c.Encode(strings.Repeat("x", 1024))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := c.Decode(big); err == nil {
		t.Fatal("oversized payload must fail to decode")
	}
}

func TestLimitDisabled(t *testing.T) {
	c := Limit{Inner: Msgpack{}}
	raw, err := c.Encode(strings.Repeat("x", 1024))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := c.Decode(raw); err != nil {
		t.Fatalf("Decode with limiting disabled: %v", err)
	}
}
