package config

import "time"

// Config holds runtime settings for the archive client.
//
// The local store is always on; the remote mirror is optional and only
// activated when RemoteDatabaseDSN is set.
type Config struct {
	// LocalDBPath is the SQLite file backing the local store.
	LocalDBPath string
	// LocalQuotaBytes caps the size of a single stored collection.
	LocalQuotaBytes int64

	// RemoteDatabaseDSN is the Postgres DSN of the record mirror. Empty
	// disables the mirror entirely.
	RemoteDatabaseDSN string

	// Blob store connection settings. Only used when the mirror is on.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// ProbeTimeout bounds the startup connectivity probe.
	ProbeTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.LocalDBPath = "archive.db"
	c.LocalQuotaBytes = 5 << 20
	c.RemoteDatabaseDSN = ""
	c.MinioEndpoint = "127.0.0.1:9000"
	c.MinioBucket = "archive-blobs"
	c.ProbeTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
