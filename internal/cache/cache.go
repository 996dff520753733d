// Package cache provides the layered page cache used by the fetcher, so
// repeated scans of the same profile page do not re-download it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the common interface over the memory and disk layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey derives a stable cache key for a fetched URL
func PageKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "kinship:v1:" + hex.EncodeToString(sum[:])
}
