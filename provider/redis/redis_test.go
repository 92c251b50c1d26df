package redis

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestProvider(t *testing.T) (*Provider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	p, err := New(Config{Client: client, CloseClient: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p, mr
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProvider(t)

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}

	want := []byte{0x00, 0xff, 0x01} // binary-safe
	if err := p.Set(ctx, "k", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Get = %x, want %x", got, want)
	}

	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatal("entry survived Del")
	}
	// deleting an absent key is not an error
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del on absent key: %v", err)
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestProvider(t)

	if err := p.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); !ok {
		t.Fatal("entry missing before expiry")
	}
	mr.FastForward(2 * time.Minute)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatal("entry survived its TTL")
	}
}

func TestNewRejectsNilClient(t *testing.T) {
	if _, err := New(Config{}); err != ErrNilClient {
		t.Fatalf("New with nil client: %v, want ErrNilClient", err)
	}
}

func TestNewFromEndpoints(t *testing.T) {
	mr := miniredis.RunT(t)
	p, err := NewFromEndpoints([]string{mr.Addr()})
	if err != nil {
		t.Fatalf("NewFromEndpoints: %v", err)
	}
	ctx := context.Background()
	if err := p.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set through owned client: %v", err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, err := NewFromEndpoints(nil); err == nil {
		t.Fatal("NewFromEndpoints without endpoints must fail")
	}
}
