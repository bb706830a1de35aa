package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/example/littlelemon/pkg/config"
)

func newTestRedis(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	repo := NewRedisRepository(&config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { repo.Close() })
	return repo, mr
}

func TestAllowFixedWindow(t *testing.T) {
	repo, _ := newTestRedis(t)
	clock := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	repo.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ok, err := repo.Allow(ctx, "user:1", 3, time.Minute)
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !ok {
			t.Fatalf("Allow #%d rejected within limit", i)
		}
	}

	ok, err := repo.Allow(ctx, "user:1", 3, time.Minute)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Error("fourth request in the window should be throttled")
	}

	ok, _ = repo.Allow(ctx, "user:2", 3, time.Minute)
	if !ok {
		t.Error("other keys have their own quota")
	}

	clock = clock.Add(time.Minute)
	ok, _ = repo.Allow(ctx, "user:1", 3, time.Minute)
	if !ok {
		t.Error("next window should reset the quota")
	}
}

func TestAllowSetsExpiry(t *testing.T) {
	repo, mr := newTestRedis(t)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	if _, err := repo.Allow(context.Background(), "anon:10.0.0.1", 5, time.Minute); err != nil {
		t.Fatalf("Allow: %v", err)
	}

	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("keys = %v, want one window key", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}
}

func TestAllowRedisDown(t *testing.T) {
	repo, mr := newTestRedis(t)
	mr.Close()

	if _, err := repo.Allow(context.Background(), "user:1", 1, time.Minute); err == nil {
		t.Error("expected error when redis is unreachable")
	}
}
