// Package cache stores classifier responses keyed by request content, so
// re-running a batch over unchanged articles never repeats an external
// call and always reproduces the same sources and scores.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory and disk layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResponseKey derives the cache key for one classifier request. The key
// covers the full serialized request, so any change to the article text
// or the voice list misses cleanly.
func ResponseKey(serializedRequest []byte) string {
	hash := sha256.Sum256(serializedRequest)
	return "sourcescore:v1:" + hex.EncodeToString(hash[:])
}
