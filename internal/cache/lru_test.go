package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to be cached")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %v %v", v, ok)
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUCache_TTL(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](10, time.Minute).WithClock(clk.now)
	c.Set("k", "v")
	c.Set("other", "v")

	clk.advance(30 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("entry expired too early")
	}

	clk.advance(31 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("entry should have expired")
	}
	if n := c.CleanExpired(); n != 1 {
		t.Fatalf("expected 1 swept entry, got %d", n)
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Size != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestLRUCache_Clear(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if c.Size() != 0 {
		t.Fatalf("expected empty cache")
	}
	if _, ok := c.Get("a"); ok {
		t.Fatalf("a should be gone")
	}
}

func TestManager_Sweep(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	c := NewLRUCache[int](4, time.Second).WithClock(clk.now)
	c.Set("a", 1)

	m := NewManager(nil)
	m.Register(c)
	m.StartCleanup(time.Hour)
	defer m.Stop()

	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a hit")
	}
	clk.advance(2 * time.Second)
	if n := m.Sweep(); n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	if st := m.Stats(); st.Hits != 1 || st.Size != 0 {
		t.Fatalf("unexpected manager stats %+v", st)
	}
}
