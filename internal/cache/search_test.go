package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func intPtr(n int) *int { return &n }

func newTestCache(t *testing.T) (*SearchCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	nop := zerolog.Nop()
	return NewSearchCache(client, time.Minute, &nop), mr
}

func TestSearchKey(t *testing.T) {
	opts := model.FilterOptions{MinimumPricePerNight: intPtr(50)}

	a, err := searchKey("0", opts, 10)
	if err != nil {
		t.Fatalf("searchKey failed: %v", err)
	}
	if !strings.HasPrefix(a, keyPrefix+":0:") {
		t.Fatalf("unexpected key %s", a)
	}

	same, _ := searchKey("0", model.FilterOptions{MinimumPricePerNight: intPtr(50)}, 10)
	if a != same {
		t.Fatal("equal options must produce equal keys")
	}

	tests := []struct {
		name  string
		gen   string
		opts  model.FilterOptions
		limit int
	}{
		{"other generation", "1", opts, 10},
		{"other limit", "0", opts, 20},
		{"zero price differs from absent", "0", model.FilterOptions{MinimumPricePerNight: intPtr(0)}, 10},
		{"no filters", "0", model.FilterOptions{}, 10},
	}
	for _, tt := range tests {
		got, _ := searchKey(tt.gen, tt.opts, tt.limit)
		if got == a {
			t.Fatalf("%s: expected a different key", tt.name)
		}
	}
}

func TestSearchCache_MissThenHit(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	opts := model.FilterOptions{City: strPtr("Vancouver")}

	key, got, ok, err := c.Get(ctx, opts, 10)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok || got != nil {
		t.Fatalf("expected a miss on an empty cache, got %v", got)
	}
	if key == "" {
		t.Fatal("expected a key even on a miss")
	}

	rating := 4.5
	listings := []model.PropertyListing{
		{Property: model.Property{ID: 7, Title: "Loft", CostPerNight: 12000}, AverageRating: &rating},
	}
	if err := c.Set(ctx, key, listings); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Fatalf("expected entry ttl of 1m, got %s", ttl)
	}

	_, got, ok, err = c.Get(ctx, opts, 10)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || len(got) != 1 || got[0].ID != 7 || got[0].AverageRating == nil || *got[0].AverageRating != 4.5 {
		t.Fatalf("unexpected cached listings %+v", got)
	}

	if _, _, ok, _ := c.Get(ctx, opts, 20); ok {
		t.Fatal("a different limit must not hit the same entry")
	}
}

func TestSearchCache_EmptyResultIsCached(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	key, _, _, _ := c.Get(ctx, model.FilterOptions{}, 10)
	if err := c.Set(ctx, key, []model.PropertyListing{}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	_, got, ok, err := c.Get(ctx, model.FilterOptions{}, 10)
	if err != nil || !ok {
		t.Fatalf("expected a hit, got ok=%v err=%v", ok, err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %#v", got)
	}
}

func TestSearchCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	key, _, _, _ := c.Get(ctx, model.FilterOptions{}, 10)
	if err := c.Set(ctx, key, []model.PropertyListing{{Property: model.Property{ID: 1}}}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if gen, _ := mr.Get(generationKey()); gen != "1" {
		t.Fatalf("expected generation 1, got %q", gen)
	}

	newKey, got, ok, err := c.Get(ctx, model.FilterOptions{}, 10)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss after invalidation, got %+v", got)
	}
	if newKey == key {
		t.Fatal("expected invalidation to move searches to a new key")
	}
}

func TestSearchCache_SetAfterInvalidateStaysUnreachable(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	// A search misses and goes to the database...
	key, _, ok, err := c.Get(ctx, model.FilterOptions{}, 10)
	if err != nil || ok {
		t.Fatalf("expected a clean miss, got ok=%v err=%v", ok, err)
	}

	// ...a property is added meanwhile...
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	// ...and the search stores what it read before the insert.
	stale := []model.PropertyListing{{Property: model.Property{ID: 1}}}
	if err := c.Set(ctx, key, stale); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	_, got, ok, err := c.Get(ctx, model.FilterOptions{}, 10)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatalf("result read before invalidation was served afterwards: %+v", got)
	}
}

func TestSearchCache_SetRequiresKey(t *testing.T) {
	c, _ := newTestCache(t)

	if err := c.Set(context.Background(), "", nil); err == nil {
		t.Fatal("expected an error for an empty key")
	}
}

func TestSearchCache_RedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	key, _, ok, err := c.Get(context.Background(), model.FilterOptions{}, 10)
	if err == nil {
		t.Fatal("expected an error with redis unavailable")
	}
	if ok || key != "" {
		t.Fatalf("expected no key and no hit, got key=%q ok=%v", key, ok)
	}
	if err := c.Invalidate(context.Background()); err == nil {
		t.Fatal("expected invalidate to fail with redis unavailable")
	}
}

func strPtr(s string) *string { return &s }
