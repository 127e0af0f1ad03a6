package shape

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gogpu/termatlas/font"
)

func testKey(text string) RunKey {
	return NewRunKey(text, font.Handle{}, 14, 9, 0)
}

func TestRunKeyDistinguishesInputs(t *testing.T) {
	base := NewRunKey("hello", font.Handle{}, 14, 9, 0)

	if got := NewRunKey("world", font.Handle{}, 14, 9, 0); got == base {
		t.Error("different text should produce a different key")
	}
	if got := NewRunKey("hello", font.Handle{}, 15, 9, 0); got == base {
		t.Error("different size should produce a different key")
	}
	if got := NewRunKey("hello", font.Handle{}, 14, 12, 0); got == base {
		t.Error("different cell width should produce a different key")
	}
	if got := NewRunKey("hello", font.Handle{}, 14, 9, font.AttrBold); got == base {
		t.Error("different attributes should produce a different key")
	}
	if got := NewRunKey("hello", font.SoftFontHandle(), 14, 9, 0); got == base {
		t.Error("different face kind should produce a different key")
	}
	if got := NewRunKey("hello", font.Handle{}, 14, 9, 0); got != base {
		t.Error("identical inputs should produce identical keys")
	}
}

func TestRunCacheGetSet(t *testing.T) {
	c := NewRunCache(4)

	if _, ok := c.Get(testKey("missing")); ok {
		t.Error("Get on empty cache should miss")
	}

	v := &ShapedRun{Indices: []uint16{1}}
	c.Set(testKey("hello"), v)

	got, ok := c.Get(testKey("hello"))
	if !ok {
		t.Fatal("Get should hit after Set")
	}
	if got != v {
		t.Error("Get returned a different value")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestRunCacheSetNilIgnored(t *testing.T) {
	c := NewRunCache(4)
	c.Set(testKey("nil"), nil)
	if c.Len() != 0 {
		t.Error("Set(nil) should store nothing")
	}
}

func TestRunCacheSetReplaces(t *testing.T) {
	c := NewRunCache(4)
	key := testKey("hello")
	c.Set(key, &ShapedRun{Indices: []uint16{1}})

	v2 := &ShapedRun{Indices: []uint16{2}}
	c.Set(key, v2)

	got, _ := c.Get(key)
	if got != v2 {
		t.Error("Set should replace the existing entry")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestRunCacheEviction(t *testing.T) {
	// Capacity 2 per shard; overfill well past total capacity and verify
	// the cache never exceeds it.
	c := NewRunCache(2)
	total := 2 * DefaultShardCount

	for i := 0; i < total*4; i++ {
		c.Set(testKey(fmt.Sprintf("entry-%d", i)), &ShapedRun{})
	}

	if c.Len() > total {
		t.Errorf("Len() = %d, want at most %d", c.Len(), total)
	}
	if c.Stats().Evictions == 0 {
		t.Error("expected evictions after overfilling")
	}
}

func TestRunCacheGetOrCreate(t *testing.T) {
	c := NewRunCache(4)
	key := testKey("created")
	calls := 0

	v := c.GetOrCreate(key, func() *ShapedRun {
		calls++
		return &ShapedRun{Indices: []uint16{9}}
	})
	if v == nil || calls != 1 {
		t.Fatalf("first GetOrCreate: v=%v calls=%d", v, calls)
	}

	again := c.GetOrCreate(key, func() *ShapedRun {
		calls++
		return &ShapedRun{}
	})
	if again != v {
		t.Error("second GetOrCreate should return the cached value")
	}
	if calls != 1 {
		t.Errorf("create ran %d times, want 1", calls)
	}
}

func TestRunCacheGetOrCreateNil(t *testing.T) {
	c := NewRunCache(4)
	key := testKey("fails")

	if v := c.GetOrCreate(key, func() *ShapedRun { return nil }); v != nil {
		t.Error("GetOrCreate should pass through a nil create result")
	}
	// A failed create must not poison the key.
	v := c.GetOrCreate(key, func() *ShapedRun { return &ShapedRun{} })
	if v == nil {
		t.Error("later create should succeed and be stored")
	}
}

func TestRunCacheClear(t *testing.T) {
	c := NewRunCache(4)
	for i := range 10 {
		c.Set(testKey(fmt.Sprintf("e%d", i)), &ShapedRun{})
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Get(testKey("e0")); ok {
		t.Error("Get should miss after Clear")
	}
}

func TestRunCacheStats(t *testing.T) {
	c := NewRunCache(4)
	key := testKey("stats")
	c.Set(key, &ShapedRun{})

	c.Get(key)             // hit
	c.Get(testKey("nope")) // miss

	s := c.Stats()
	if s.Hits != 1 {
		t.Errorf("Hits = %d, want 1", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
	if s.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", s.HitRate)
	}
	if s.Capacity != 4 {
		t.Errorf("Capacity = %d, want 4", s.Capacity)
	}
}

func TestRunCacheConcurrent(t *testing.T) {
	c := NewRunCache(32)
	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := testKey(fmt.Sprintf("k%d", (g*31+i)%64))
				c.GetOrCreate(key, func() *ShapedRun { return &ShapedRun{} })
				c.Get(key)
			}
		}()
	}
	wg.Wait()

	if c.Len() == 0 {
		t.Error("cache empty after concurrent use")
	}
}
