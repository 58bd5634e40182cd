package probe

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/goodric/api-docs-tool/internal/endpoint"
	"github.com/goodric/api-docs-tool/internal/errors"
	"github.com/goodric/api-docs-tool/internal/logger"
)

// maxBodySize bounds how much of a probe response body is counted (10MB).
const maxBodySize = 10 * 1024 * 1024

// ExecutorConfig holds configuration for the probe executor.
type ExecutorConfig struct {
	// Timeout bounds each individual probe. Kept shorter than the
	// document fetch timeout since probing happens in bulk.
	Timeout       time.Duration
	UserAgent     string
	SkipTLSVerify bool
}

// DefaultExecutorConfig returns executor defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		Timeout:       10 * time.Second,
		UserAgent:     "apiget/1.0",
		SkipTLSVerify: true,
	}
}

// Executor issues one live request per selected endpoint and classifies
// the result. Probes are real network calls and may mutate server-side
// state for non-idempotent methods; that is inherent to the task.
type Executor struct {
	client  *http.Client
	timeout time.Duration
	ua      string
	log     *logger.Logger
}

// NewExecutor creates a probe executor.
func NewExecutor(cfg ExecutorConfig, log *logger.Logger) *Executor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	return &Executor{
		client: &http.Client{
			Transport: transport,
			// Per-request deadlines come from the context; redirects
			// are followed like any ordinary client would.
		},
		timeout: cfg.Timeout,
		ua:      cfg.UserAgent,
		log:     log.WithComponent("prober"),
	}
}

// Probe issues exactly one request for the endpoint and classifies the
// outcome. Never returns an error: every failure mode maps to an
// outcome kind instead.
func (e *Executor) Probe(ctx context.Context, ep endpoint.Endpoint) endpoint.Outcome {
	reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var body io.Reader
	switch ep.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		// An empty JSON object exercises handlers that require a body
		// without asserting anything about its shape.
		body = bytes.NewReader([]byte("{}"))
	}

	req, err := http.NewRequestWithContext(reqCtx, ep.Method, ep.FullURL, body)
	if err != nil {
		e.log.WithError(err).WithURL(ep.FullURL).Debug("request construction failed")
		return endpoint.Outcome{Kind: endpoint.KindRequestFailure}
	}
	req.Header.Set("User-Agent", e.ua)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return e.classifyError(ctx, ep, err)
	}
	defer resp.Body.Close()

	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		// The status arrived; a truncated body still counts what was read.
		e.log.WithError(err).WithURL(ep.FullURL).Debug("body read failed")
	}

	out := endpoint.ClassifyStatus(resp.StatusCode, int(n))
	e.log.ProbeEvent(ep.Method, ep.FullURL, out.Code(), out.Length, time.Since(start))
	return out
}

// classifyError maps a transport error to the closed failure vocabulary.
func (e *Executor) classifyError(ctx context.Context, ep endpoint.Endpoint, err error) endpoint.Outcome {
	scanErr := errors.Categorize(err, ep.FullURL)

	var kind endpoint.Kind
	switch scanErr.Type {
	case errors.Timeout:
		kind = endpoint.KindTimeout
	case errors.Connection:
		kind = endpoint.KindConnectionFailure
	case errors.Request:
		kind = endpoint.KindRequestFailure
	case errors.Cancelled:
		// The caller's context was cancelled mid-probe; the run is
		// aborting, but an outcome is still owed for this endpoint.
		if ctx.Err() != nil {
			kind = endpoint.KindUnknownFailure
		} else {
			kind = endpoint.KindTimeout
		}
	default:
		kind = endpoint.KindUnknownFailure
	}

	e.log.WithError(err).WithURL(ep.FullURL).Debugf("probe failed: %s", scanErr.Type)
	return endpoint.Outcome{Kind: kind}
}
