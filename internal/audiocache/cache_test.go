package audiocache

import (
	"fmt"
	"testing"
)

func TestKeyFormat(t *testing.T) {
	if got := Key("hello", "Kore"); got != "hello_Kore" {
		t.Errorf("Key = %q, want %q", got, "hello_Kore")
	}
}

func TestGetMiss(t *testing.T) {
	c := New(3)
	if _, ok := c.Get("nope"); ok {
		t.Error("Get on empty cache reported a hit")
	}
}

func TestPutThenGet(t *testing.T) {
	c := New(3)
	c.Put("k", []byte("audio"))
	data, ok := c.Get("k")
	if !ok {
		t.Fatal("Get missed a stored key")
	}
	if string(data) != "audio" {
		t.Errorf("Get = %q, want %q", data, "audio")
	}
}

func TestFIFOEvictsOldestInserted(t *testing.T) {
	limit := 5
	c := New(limit)
	for i := 0; i < limit; i++ {
		c.Put(fmt.Sprintf("k%d", i), []byte{byte(i)})
	}

	// Reading the oldest entry must not protect it from eviction.
	if _, ok := c.Get("k0"); !ok {
		t.Fatal("k0 missing before eviction")
	}

	c.Put("extra", []byte("x"))

	if _, ok := c.Get("k0"); ok {
		t.Error("k0 should have been evicted as the oldest-inserted entry")
	}
	for i := 1; i < limit; i++ {
		if _, ok := c.Get(fmt.Sprintf("k%d", i)); !ok {
			t.Errorf("k%d unexpectedly evicted", i)
		}
	}
	if _, ok := c.Get("extra"); !ok {
		t.Error("newest entry missing after insert")
	}
	if got := c.Stats().Size; got != limit {
		t.Errorf("size = %d, want %d", got, limit)
	}
}

func TestRePutRefreshesWithoutGrowing(t *testing.T) {
	c := New(2)
	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Put("a", []byte("updated"))

	if got := c.Stats().Size; got != 2 {
		t.Errorf("size after re-put = %d, want 2", got)
	}
	data, ok := c.Get("a")
	if !ok || string(data) != "updated" {
		t.Errorf("Get(a) = %q, %v; want %q", data, ok, "updated")
	}

	// a kept its original insertion slot, so it is still evicted first.
	c.Put("c", []byte("3"))
	if _, ok := c.Get("a"); ok {
		t.Error("re-put must not refresh the eviction slot")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b unexpectedly evicted")
	}
}

func TestClear(t *testing.T) {
	c := New(3)
	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Clear()

	if got := c.Stats().Size; got != 0 {
		t.Errorf("size after clear = %d, want 0", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}

	// The cache keeps working after a clear.
	c.Put("c", []byte("3"))
	if _, ok := c.Get("c"); !ok {
		t.Error("Put after Clear lost the entry")
	}
}

func TestNonPositiveLimitUsesDefault(t *testing.T) {
	c := New(0)
	if got := c.Stats().Limit; got != DefaultLimit {
		t.Errorf("limit = %d, want %d", got, DefaultLimit)
	}
}
