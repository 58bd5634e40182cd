package spec

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/goodric/api-docs-tool/internal/errors"
	"github.com/goodric/api-docs-tool/internal/logger"
)

// maxDocumentSize bounds how much of a document body is read (10MB).
const maxDocumentSize = 10 * 1024 * 1024

// FetcherConfig holds configuration for the document fetcher.
type FetcherConfig struct {
	// Timeout for the document request. Deliberately longer than the
	// per-probe timeout since this single request gates the whole run.
	Timeout       time.Duration
	UserAgent     string
	SkipTLSVerify bool
}

// DefaultFetcherConfig returns fetcher defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:       30 * time.Second,
		UserAgent:     "apiget/1.0",
		SkipTLSVerify: true,
	}
}

// Fetcher retrieves and decodes specification documents.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *logger.Logger
}

// NewFetcher creates a document fetcher.
func NewFetcher(cfg FetcherConfig, log *logger.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		log:       log.WithComponent("fetcher"),
	}
}

// Fetch retrieves the document at url and parses it. Any failure here
// is fatal to the run: no endpoint processing happens without a document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Document, error) {
	f.log.WithURL(url).Info("fetching specification document")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetchError(url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json, application/yaml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New(errors.Fetch, url, "fetch_document",
			"server returned "+resp.Status, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, errors.NewFetchError(url, err)
	}

	doc, err := Parse(body)
	if err != nil {
		return nil, errors.NewDecodeError(url, err)
	}

	f.log.Debugf("document parsed: %d paths, %d operations",
		len(doc.Paths), doc.OperationCount())
	return doc, nil
}
