// Package apiget discovers the endpoints of an OpenAPI/Swagger-style
// document, probes each one with a live request, and renders the
// combined result as an HTML report and a CSV export.
package apiget

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all scanner configuration.
type Config struct {
	// DocumentURL is the specification document to fetch. Required.
	DocumentURL string `json:"document_url" yaml:"document_url"`

	// BaseURL overrides base-URL resolution from the document.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MethodFilter is a raw comma-separated method allow-list
	// (e.g. "get,post"). Empty means no method filtering.
	MethodFilter string `json:"method_filter" yaml:"method_filter"`

	// Limit caps how many endpoints are probed; 0 means no limit.
	Limit int `json:"limit" yaml:"limit"`

	// IncludeDelete opts in to probing DELETE endpoints.
	IncludeDelete bool `json:"include_delete" yaml:"include_delete"`

	// SkipProbing extracts endpoints without issuing any probe.
	SkipProbing bool `json:"skip_probing" yaml:"skip_probing"`

	// FetchTimeout bounds the document request.
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`

	// ProbeTimeout bounds each individual probe.
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout"`

	// Workers bounds probe concurrency.
	Workers int `json:"workers" yaml:"workers"`

	// Delay is the pacing interval between consecutive probes.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// OutputDir is where report files are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// HistoryPath enables the run-history database when non-empty.
	HistoryPath string `json:"history_path" yaml:"history_path"`

	// UserAgent is sent on every request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// SkipTLSVerify disables certificate verification; documentation
	// endpoints on internal hosts rarely have valid certs.
	SkipTLSVerify bool `json:"skip_tls_verify" yaml:"skip_tls_verify"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		FetchTimeout:  30 * time.Second,
		ProbeTimeout:  10 * time.Second,
		Workers:       5,
		Delay:         100 * time.Millisecond,
		OutputDir:     ".",
		UserAgent:     "apiget/1.0",
		SkipTLSVerify: true,
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DocumentURL == "" {
		return fmt.Errorf("document URL is required")
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.FetchTimeout <= c.ProbeTimeout {
		return fmt.Errorf("fetch timeout must exceed the probe timeout")
	}
	return nil
}
