package docstore

// Config holds configuration for the document store backend.
type Config struct {
	// Backend selects the store implementation (db, object, memory).
	Backend string `mapstructure:"backend" default:"object"`
	// FixturePath is a JSON fixture file loaded by the memory backend.
	FixturePath string `mapstructure:"fixture_path" default:""`
	// CacheTTLSeconds bounds the staleness of cached lookups. Zero disables
	// caching entirely.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}

// Backend names accepted by Config.Backend.
const (
	BackendDB     = "db"
	BackendObject = "object"
	BackendMemory = "memory"
)

// IsValidBackend checks if the configured backend is valid.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendDB, BackendObject, BackendMemory:
		return true
	default:
		return false
	}
}
