// Package config loads runtime configuration for the archive client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-f string   path to the local SQLite database file
//	-q int      local storage quota in bytes
//	-d string   Postgres DSN of the remote record mirror
//	-m string   blob store endpoint (host:port)
//	-b string   blob store bucket name
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "local_db_path": "archive.db",
//	  "remote_database_dsn": "postgres://archive:secret@db:5432/archive",
//	  "minio_endpoint": "127.0.0.1:9000",
//	  "minio_bucket": "archive-blobs",
//	  "probe_timeout": "5s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
