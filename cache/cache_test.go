package cache

import (
	"strconv"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](4)
	if _, ok := c.Get("missing"); ok {
		t.Errorf("Get on empty cache reported a hit")
	}
	c.Set("a", 1)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Errorf("Get(a) = (%d, %v), want (1, true)", got, ok)
	}
	c.Set("a", 2)
	if got, _ := c.Get("a"); got != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestEviction(t *testing.T) {
	c := New[int, int](3)
	for i := 0; i < 3; i++ {
		c.Set(i, i)
	}
	// Touch 0 so 1 becomes the least recently used.
	c.Get(0)
	c.Set(3, 3)
	if _, ok := c.Get(1); ok {
		t.Errorf("least recently used entry survived eviction")
	}
	for _, k := range []int{0, 2, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d evicted unexpectedly", k)
		}
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](4)
	calls := 0
	create := func() int {
		calls++
		return 42
	}
	if got := c.GetOrCreate("k", create); got != 42 {
		t.Errorf("GetOrCreate = %d, want 42", got)
	}
	if got := c.GetOrCreate("k", create); got != 42 {
		t.Errorf("GetOrCreate on hit = %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestDelete(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)
	if !c.Delete("a") {
		t.Errorf("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Errorf("Delete of absent key = true, want false")
	}
}

func TestPruneAndClear(t *testing.T) {
	c := New[int, int](8)
	for i := 0; i < 8; i++ {
		c.Set(i, i)
	}
	c.Prune()
	if c.Len() != 4 {
		t.Errorf("Len() after Prune = %d, want 4", c.Len())
	}
	// The recently used half survives.
	if _, ok := c.Get(7); !ok {
		t.Errorf("most recent entry pruned")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestStats(t *testing.T) {
	c := New[string, string](2)
	c.Set("a", "1")
	c.Get("a")
	c.Get("b")
	c.Set("b", "2")
	c.Set("c", "3")

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
	if stats.Len != 2 || stats.Capacity != 2 {
		t.Errorf("Len/Capacity = %d/%d, want 2/2", stats.Len, stats.Capacity)
	}
}

func TestDefaultCapacity(t *testing.T) {
	c := New[string, int](0)
	if c.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", c.Capacity(), DefaultCapacity)
	}
	for i := 0; i < DefaultCapacity+10; i++ {
		c.Set(strconv.Itoa(i), i)
	}
	if c.Len() > DefaultCapacity {
		t.Errorf("Len() = %d exceeds capacity %d", c.Len(), DefaultCapacity)
	}
}
