package endpoint

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goodric/api-docs-tool/internal/spec"
)

// ResolveBase determines the base URL endpoints are joined against.
// Resolution order: explicit override, first servers[].url entry, then
// the scheme and authority of the document URL itself.
func ResolveBase(doc *spec.Document, docURL, override string) (string, error) {
	if override != "" {
		return strings.TrimRight(override, "/"), nil
	}

	if len(doc.Servers) > 0 && doc.Servers[0].URL != "" {
		return strings.TrimRight(doc.Servers[0].URL, "/"), nil
	}

	parsed, err := url.Parse(docURL)
	if err != nil {
		return "", fmt.Errorf("cannot derive base URL from document URL %q: %w", docURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("document URL %q has no scheme or host to derive a base URL from", docURL)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}

// Normalize turns a parsed document into the canonical ordered endpoint
// sequence. One endpoint is emitted per (path, method) pair whose
// upper-cased method is a known HTTP verb; other keys (parameters,
// vendor extensions) are silently skipped. Duplicates are preserved in
// document order.
func Normalize(doc *spec.Document, docURL, baseOverride string) ([]Endpoint, error) {
	base, err := ResolveBase(doc, docURL, baseOverride)
	if err != nil {
		return nil, err
	}

	var endpoints []Endpoint
	for _, item := range doc.Paths {
		for _, op := range item.Operations {
			method := strings.ToUpper(op.Method)
			if !IsMethod(method) {
				continue
			}

			path := item.Path
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			tags := op.Tags
			if tags == nil {
				tags = []string{}
			}

			endpoints = append(endpoints, Endpoint{
				Path:        item.Path,
				FullURL:     base + path,
				Method:      method,
				Summary:     op.Summary,
				Description: op.Description,
				OperationID: op.OperationID,
				Tags:        tags,
			})
		}
	}
	return endpoints, nil
}
