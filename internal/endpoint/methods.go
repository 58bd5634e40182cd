package endpoint

import (
	"errors"
	"strings"
)

// ErrNoValidMethods is returned when a method filter yields no valid
// tokens at all. This is a user error and fatal to the run: probing
// must not silently fall back to an unfiltered set.
var ErrNoValidMethods = errors.New("method filter contains no valid HTTP methods")

// ParseMethodFilter parses a comma-separated method list. Tokens are
// trimmed and upper-cased, then validated against the fixed verb set.
// Valid tokens are returned in input order (duplicates allowed);
// rejected tokens are returned separately so the caller can warn about
// them without aborting. An input with zero valid tokens returns
// ErrNoValidMethods.
func ParseMethodFilter(raw string) (valid, rejected []string, err error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil, ErrNoValidMethods
	}

	for _, tok := range strings.Split(raw, ",") {
		m := strings.ToUpper(strings.TrimSpace(tok))
		if m == "" {
			continue
		}
		if IsMethod(m) {
			valid = append(valid, m)
		} else {
			rejected = append(rejected, m)
		}
	}

	if len(valid) == 0 {
		return nil, rejected, ErrNoValidMethods
	}
	return valid, rejected, nil
}
