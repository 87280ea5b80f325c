package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "reviewdash/internal/adapters/redis"
	"reviewdash/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	snap := domain.Snapshot{Stats: &domain.Stats{MeanRating: 4.2, ReviewCount: 7}}
	if err := c.Set(ctx, "snapshot:s:0", snap, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got domain.Snapshot
	ok, err := c.Get(ctx, "snapshot:s:0", &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !got.Available() || got.Stats.MeanRating != 4.2 || got.Stats.ReviewCount != 7 {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := c.Del(ctx, "snapshot:s:0"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := c.Get(ctx, "snapshot:s:0", &got); ok {
		t.Fatal("expected miss after Del")
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	var got domain.Snapshot
	ok, err := c.Get(context.Background(), "nope", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", domain.Unavailable("x"), 30); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var got domain.Snapshot
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}
