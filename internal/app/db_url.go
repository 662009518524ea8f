package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL applies the PGSSL toggle when the DSN does not set sslmode itself.
func normalizeDBURL(raw string, ssl bool) string {
	mode := "disable"
	if ssl {
		mode = "require"
	}

	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		query := parsed.Query()
		if query.Get("sslmode") != "" {
			return trimmed
		}
		query.Set("sslmode", mode)
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	if trimmed == "" || strings.Contains(trimmed, "sslmode=") {
		return trimmed
	}
	return trimmed + " sslmode=" + mode
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
