package config

import (
	"flag"
	"os"

	"archivedb/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   path to the local SQLite database file
//	-q int      local storage quota in bytes
//	-d string   Postgres DSN of the remote record mirror
//	-m string   blob store endpoint (host:port)
//	-b string   blob store bucket name
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-q", "-d", "-m", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDBPath, "f", cfg.LocalDBPath, "path to the local database file")
	fs.Int64Var(&cfg.LocalQuotaBytes, "q", cfg.LocalQuotaBytes, "local storage quota (bytes)")
	fs.StringVar(&cfg.RemoteDatabaseDSN, "d", cfg.RemoteDatabaseDSN, "remote record database DSN")
	fs.StringVar(&cfg.MinioEndpoint, "m", cfg.MinioEndpoint, "blob store endpoint")
	fs.StringVar(&cfg.MinioBucket, "b", cfg.MinioBucket, "blob store bucket")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
