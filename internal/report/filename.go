package report

import (
	"net/url"
	"regexp"
	"strings"
)

var unsafeRunes = regexp.MustCompile(`[^\w\-.]`)

// OutputBase derives a filesystem-safe base name from the document URL
// host: the port is stripped and anything outside [A-Za-z0-9_.-] is
// replaced with underscores. Falls back to "api_docs".
func OutputBase(docURL string) string {
	parsed, err := url.Parse(docURL)
	if err != nil || parsed.Host == "" {
		return "api_docs"
	}

	host := parsed.Hostname()
	safe := unsafeRunes.ReplaceAllString(host, "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		return "api_docs"
	}
	return safe
}
