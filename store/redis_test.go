package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStoreTest(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return NewRedis(rdb, "bl"), mr
}

func TestRedisSaveContainsDelete(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedisStoreTest(t)

	if found, err := r.Contains(ctx, "jwt.blacklist:abc"); err != nil || found {
		t.Fatalf("Contains on empty store = (%v, %v), want (false, nil)", found, err)
	}
	if err := r.Save(ctx, "jwt.blacklist:abc", 1000, time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if found, _ := r.Contains(ctx, "jwt.blacklist:abc"); !found {
		t.Fatal("Contains missed a live marker")
	}
	if err := r.Delete(ctx, "jwt.blacklist:abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if found, _ := r.Contains(ctx, "jwt.blacklist:abc"); found {
		t.Fatal("Contains found a deleted marker")
	}
	if err := r.Delete(ctx, "jwt.blacklist:abc"); err != nil {
		t.Fatalf("repeat Delete failed: %v", err)
	}
}

func TestRedisMarkerTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisStoreTest(t)

	if err := r.Save(ctx, "k", 1000, 10*time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(10*time.Minute - time.Second)
	if found, _ := r.Contains(ctx, "k"); !found {
		t.Fatal("marker expired early")
	}

	mr.FastForward(2 * time.Second)
	if found, _ := r.Contains(ctx, "k"); found {
		t.Fatal("marker survived its TTL")
	}
}

func TestRedisNonPositiveTTLClamped(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisStoreTest(t)

	if err := r.Save(ctx, "k", 1000, 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// The marker must carry a TTL; a zero TTL would persist forever.
	if ttl := mr.TTL("bl:k"); ttl <= 0 {
		t.Fatalf("marker TTL = %v, want > 0", ttl)
	}
}

func TestRedisKeyNamespacing(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisStoreTest(t)

	if err := r.Save(ctx, "abc", 1, time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !mr.Exists("bl:abc") {
		t.Fatal("key not namespaced under the store prefix")
	}
	if mr.Exists("abc") {
		t.Fatal("un-prefixed key leaked into redis")
	}
}

func TestRedisBackendFailureWrapped(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedis(rdb, "bl")
	mr.Close()
	defer rdb.Close()

	if _, err := r.Contains(ctx, "k"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Contains against dead backend = %v, want ErrRedisUnavailable", err)
	}
	if err := r.Save(ctx, "k", 1, time.Hour); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Save against dead backend = %v, want ErrRedisUnavailable", err)
	}
	if err := r.Delete(ctx, "k"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Delete against dead backend = %v, want ErrRedisUnavailable", err)
	}
}
