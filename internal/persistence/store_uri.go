package persistence

import (
	"fmt"
	"strings"
)

// Driver identifies a content store backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// ParseStoreURI maps CONTENT_STORE_URI to a backend and the DSN it expects.
//
//	postgres://... or postgresql://...  -> pgx, URI passed through
//	sqlite://<path> or file:<path>      -> SQLite at <path>
func ParseStoreURI(uri string) (Driver, string, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return DriverPostgres, uri, nil
	case strings.HasPrefix(uri, "sqlite://"):
		path := strings.TrimPrefix(uri, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite store uri %q has no path", uri)
		}
		return DriverSQLite, path, nil
	case strings.HasPrefix(uri, "file:"):
		path := strings.TrimPrefix(uri, "file:")
		if path == "" {
			return "", "", fmt.Errorf("sqlite store uri %q has no path", uri)
		}
		return DriverSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported content store uri scheme in %q", redact(uri))
	}
}

// redact drops anything after the scheme so credentials never reach logs.
func redact(uri string) string {
	if i := strings.Index(uri, "://"); i >= 0 {
		return uri[:i+3] + "..."
	}
	return "..."
}
