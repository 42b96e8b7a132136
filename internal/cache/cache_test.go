package cache

import (
	"strings"
	"testing"
	"time"
)

func TestResponseKeyStable(t *testing.T) {
	req := []byte(`{"article_text":"...","category":"News"}`)
	k1 := ResponseKey(req)
	k2 := ResponseKey(req)
	if k1 != k2 {
		t.Fatalf("same request produced different keys: %s vs %s", k1, k2)
	}
	if !strings.HasPrefix(k1, "sourcescore:v1:") {
		t.Errorf("key missing version prefix: %s", k1)
	}
	if k1 == ResponseKey([]byte(`{"article_text":"other","category":"News"}`)) {
		t.Error("different requests produced the same key")
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := ResponseKey([]byte("req"))

	if _, found := c.Get(key); found {
		t.Fatal("unexpected hit on empty cache")
	}
	if err := c.Set(key, []byte("judgment"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "judgment" {
		t.Fatalf("Get = %q, %v; want judgment, true", val, found)
	}
	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("hit after delete")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := ResponseKey([]byte("req"))

	if err := c.Set(key, []byte("judgment"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get(key); !found || string(val) != "judgment" {
		t.Fatalf("Get before expiry = %q, %v", val, found)
	}

	time.Sleep(20 * time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("hit after TTL expired")
	}
}

func TestLayeredCachePromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	key := ResponseKey([]byte("req"))

	// Seed disk only, as if a previous run wrote it.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set(key, []byte("judgment"), time.Minute); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	if val, found := layered.Get(key); !found || string(val) != "judgment" {
		t.Fatalf("layered Get = %q, %v", val, found)
	}

	// The hit should now be served from memory even if disk is cleared.
	if err := disk.Clear(); err != nil {
		t.Fatalf("clear disk: %v", err)
	}
	if _, found := layered.Get(key); !found {
		t.Error("entry not promoted to memory layer")
	}
}
