package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestMemoryCache(max int) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(max)
	c.now = clock.now
	return c, clock
}

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestMemoryCache(4)

	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Fatal("empty cache reported a hit")
	}

	value := []byte("svg")
	if err := c.Set(ctx, "a", value, 0); err != nil {
		t.Fatal(err)
	}
	value[0] = 'X'

	got, hit, err := c.Get(ctx, "a")
	if err != nil || !hit {
		t.Fatalf("Get = %q, %v, %v", got, hit, err)
	}
	if string(got) != "svg" {
		t.Errorf("Get = %q, want a copy of the stored bytes", got)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted key still present")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestMemoryCache(4)

	_ = c.Set(ctx, "short", []byte("1"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("2"), 0)

	clock.advance(30 * time.Second)
	if _, hit, _ := c.Get(ctx, "short"); !hit {
		t.Error("entry expired early")
	}

	clock.advance(time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("entry survived its ttl")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl expired")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 after expired Get", c.Len())
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestMemoryCache(2)

	_ = c.Set(ctx, "late", []byte("1"), time.Hour)
	_ = c.Set(ctx, "soon", []byte("2"), time.Minute)
	_ = c.Set(ctx, "new", []byte("3"), time.Hour)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "soon"); hit {
		t.Error("entry expiring soonest was not evicted")
	}

	// Overwriting an existing key never evicts.
	_ = c.Set(ctx, "late", []byte("4"), time.Hour)
	if _, hit, _ := c.Get(ctx, "new"); !hit {
		t.Error("overwrite evicted another entry")
	}

	// Expired entries are dropped before live ones.
	clock.advance(2 * time.Hour)
	_ = c.Set(ctx, "fresh", []byte("5"), 0)
	_ = c.Set(ctx, "fresh2", []byte("6"), 0)
	for _, k := range []string{"fresh", "fresh2"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s missing after expired entries were evicted", k)
		}
	}
}

func TestMemoryCacheClose(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	_ = c.Set(ctx, "a", []byte("1"), 0)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len after Close = %d, want 0", c.Len())
	}
	if c.max != DefaultMaxEntries {
		t.Errorf("max = %d, want %d", c.max, DefaultMaxEntries)
	}
}

func TestMemoryCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(8)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			_ = c.Set(ctx, key, []byte(key), time.Minute)
			_, _, _ = c.Get(ctx, key)
		}()
	}
	wg.Wait()

	if c.Len() != 4 {
		t.Errorf("Len = %d, want 4", c.Len())
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKey(t *testing.T) {
	type opts struct {
		Layers []int
		Seed   uint64
	}

	k1 := Key("svg", opts{Layers: []int{3, 6}, Seed: 1})
	k2 := Key("svg", opts{Layers: []int{3, 6}, Seed: 2})
	k3 := Key("png", opts{Layers: []int{3, 6}, Seed: 1})

	if !strings.HasPrefix(k1, "svg:") {
		t.Errorf("Key = %q, want svg: prefix", k1)
	}
	if k1 == k2 || k1 == k3 {
		t.Error("different inputs should produce different keys")
	}
	if k1 != Key("svg", opts{Layers: []int{3, 6}, Seed: 1}) {
		t.Error("Key should be deterministic")
	}
}
