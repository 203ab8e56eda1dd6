package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL forces disable_prepared_binary_result=yes onto the DSN
// unless the caller already set it. Some pgbouncer setups choke on binary
// results from unnamed prepared statements.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	values := parsed.Query()
	if values.Get("disable_prepared_binary_result") == "" {
		values.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = values.Encode()
	}
	return parsed.String()
}

// dbNameFromURL extracts the database name from either URL-style or
// key=value DSNs, for the db.name span attribute.
func dbNameFromURL(raw string) string {
	dsn := strings.TrimSpace(raw)

	if parsed, err := url.Parse(dsn); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(dsn) {
		if strings.HasPrefix(token, "dbname=") {
			if name := strings.Trim(strings.TrimPrefix(token, "dbname="), `"'`); name != "" {
				return name
			}
		}
	}
	return ""
}
