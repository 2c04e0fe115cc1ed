package cache

import "time"

// Cache keys for the persisted freight configuration.
const (
	KeyFreightConfig   = "system:config:freight"
	KeyLocalZoneConfig = "system:config:freight:local_zone"
	PrefixFreight      = "system:config:freight"
)

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get returns the value and true when the key is present and not expired.
	Get(key string) (interface{}, bool)

	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)

	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(prefix string)

	Flush()
}
