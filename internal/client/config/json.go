package config

import (
	"encoding/json"
	"os"
	"time"

	"archivedb/internal/flagx"
	"archivedb/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "5s" or as integer nanoseconds. After parsing, values are
// copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	LocalDBPath       string         `json:"local_db_path"`
	LocalQuotaBytes   int64          `json:"local_quota_bytes"`
	RemoteDatabaseDSN string         `json:"remote_database_dsn"`
	MinioEndpoint     string         `json:"minio_endpoint"`
	MinioAccessKey    string         `json:"minio_access_key"`
	MinioSecretKey    string         `json:"minio_secret_key"`
	MinioBucket       string         `json:"minio_bucket"`
	MinioUseSSL       bool           `json:"minio_use_ssl"`
	ProbeTimeout      timex.Duration `json:"probe_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields actually present (non-zero) in the JSON override the current
// values, so a partial file overlays cleanly on the defaults. Read or
// unmarshal errors panic; configuration is unusable at that point.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.LocalQuotaBytes > 0 {
		cfg.LocalQuotaBytes = jc.LocalQuotaBytes
	}
	if jc.RemoteDatabaseDSN != "" {
		cfg.RemoteDatabaseDSN = jc.RemoteDatabaseDSN
	}
	if jc.MinioEndpoint != "" {
		cfg.MinioEndpoint = jc.MinioEndpoint
	}
	if jc.MinioAccessKey != "" {
		cfg.MinioAccessKey = jc.MinioAccessKey
	}
	if jc.MinioSecretKey != "" {
		cfg.MinioSecretKey = jc.MinioSecretKey
	}
	if jc.MinioBucket != "" {
		cfg.MinioBucket = jc.MinioBucket
	}
	if jc.MinioUseSSL {
		cfg.MinioUseSSL = true
	}
	if jc.ProbeTimeout.Duration > 0 {
		cfg.ProbeTimeout = time.Duration(jc.ProbeTimeout.Duration)
	}
}
