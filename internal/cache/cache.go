package cache

import "time"

// Cache is the script-cache interface used by the query service. Generated
// radio scripts are deterministic per (record id, mode) for a loaded store,
// so they are safe to cache for the server's lifetime or a TTL.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Flush()
}

// Key builds the cache key for a generated script
func Key(recordID, mode string) string {
	return "script:" + recordID + ":" + mode
}
