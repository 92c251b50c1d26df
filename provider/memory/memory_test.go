package memory

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := New()

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}

	want := []byte("value")
	if err := p.Set(ctx, "k", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Get = %q, want %q", got, want)
	}

	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatal("entry survived Del")
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	p := New()

	if err := p.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); !ok {
		t.Fatal("entry missing before expiry")
	}
	time.Sleep(25 * time.Millisecond)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatal("entry survived its TTL")
	}
	// the expired read swept the entry
	if p.Len() != 0 {
		t.Fatalf("Len = %d after expiry sweep, want 0", p.Len())
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	p := New()

	if err := p.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := p.Get(ctx, "k"); !ok {
		t.Fatal("zero-TTL entry must not expire")
	}
}

func TestCloseClears(t *testing.T) {
	ctx := context.Background()
	p := New()
	_ = p.Set(ctx, "a", []byte("1"), 0)
	_ = p.Set(ctx, "b", []byte("2"), 0)

	if err := p.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if p.Len() != 0 {
		t.Fatalf("Len = %d after Close, want 0", p.Len())
	}
}
