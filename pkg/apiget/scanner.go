package apiget

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goodric/api-docs-tool/internal/endpoint"
	"github.com/goodric/api-docs-tool/internal/errors"
	"github.com/goodric/api-docs-tool/internal/history"
	"github.com/goodric/api-docs-tool/internal/logger"
	"github.com/goodric/api-docs-tool/internal/probe"
	"github.com/goodric/api-docs-tool/internal/report"
	"github.com/goodric/api-docs-tool/internal/spec"
)

// Result holds the outcome of a completed scan.
type Result struct {
	// Endpoints is the full aggregated sequence in document order,
	// each endpoint carrying exactly one outcome.
	Endpoints []endpoint.Probed

	Meta report.Meta

	Probed  int
	Skipped int

	HTMLPath string
	CSVPath  string
}

// Scanner runs the discovery-and-probing pipeline end to end.
type Scanner struct {
	config *Config
	log    *logger.Logger
}

// New creates a scanner from functional options.
func New(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.log == nil {
		cfg := logger.DefaultConfig()
		if s.config.Verbose {
			cfg.Level = logger.DebugLevel
		}
		s.log = logger.New(cfg)
	}
	return s, nil
}

// Run executes the pipeline: fetch, normalize, filter, select, probe,
// aggregate, render. The document fetch/decode failing or a method
// filter with zero valid verbs abort the run before any probing and
// before any file is written; every probe-level failure is captured as
// an outcome instead. On cancellation no report is written.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	policy, err := s.buildPolicy()
	if err != nil {
		return nil, err
	}

	fetcher := spec.NewFetcher(spec.FetcherConfig{
		Timeout:       s.config.FetchTimeout,
		UserAgent:     s.config.UserAgent,
		SkipTLSVerify: s.config.SkipTLSVerify,
	}, s.log)

	doc, err := fetcher.Fetch(ctx, s.config.DocumentURL)
	if err != nil {
		return nil, err
	}

	endpoints, err := endpoint.Normalize(doc, s.config.DocumentURL, s.config.BaseURL)
	if err != nil {
		return nil, err
	}
	s.log.Infof("extracted %d endpoints", len(endpoints))

	plan := probe.Select(endpoints, policy)

	executor := probe.NewExecutor(probe.ExecutorConfig{
		Timeout:       s.config.ProbeTimeout,
		UserAgent:     s.config.UserAgent,
		SkipTLSVerify: s.config.SkipTLSVerify,
	}, s.log)
	runner := probe.NewRunner(probe.RunnerConfig{
		Workers: s.config.Workers,
		Delay:   s.config.Delay,
	}, executor, s.log)

	probed, err := runner.Run(ctx, plan, len(endpoints))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Endpoints: probed,
		Meta: report.Meta{
			Title:       doc.Info.Title,
			Description: doc.Info.Description,
			Version:     doc.Info.Version,
		},
		Probed:  len(plan.ToProbe),
		Skipped: len(plan.Skipped),
	}

	if err := s.writeReports(result); err != nil {
		// Probing is the expensive, non-idempotent part; its results
		// stay in the returned Result even when persisting failed.
		return result, err
	}

	if s.config.HistoryPath != "" {
		if err := s.recordHistory(result); err != nil {
			s.log.WithError(err).Warn("failed to record run history")
		}
	}

	return result, nil
}

// buildPolicy resolves the probe policy from configuration, parsing the
// method filter up front so an invalid filter aborts before fetching.
func (s *Scanner) buildPolicy() (probe.Policy, error) {
	policy := probe.Policy{
		Limit:         s.config.Limit,
		IncludeDelete: s.config.IncludeDelete,
		SkipAll:       s.config.SkipProbing,
	}

	if s.config.MethodFilter != "" {
		valid, rejected, err := endpoint.ParseMethodFilter(s.config.MethodFilter)
		if len(rejected) > 0 {
			s.log.Warnf("ignoring invalid HTTP methods: %s (valid: %s)",
				strings.Join(rejected, ", "), strings.Join(endpoint.Methods, ", "))
		}
		if err != nil {
			return policy, err
		}
		policy.Methods = valid
	}
	return policy, nil
}

// writeReports renders the HTML report and CSV export next to each
// other, named after the document host.
func (s *Scanner) writeReports(result *Result) error {
	base := report.OutputBase(s.config.DocumentURL)
	htmlPath := filepath.Join(s.config.OutputDir, base+".html")
	csvPath := filepath.Join(s.config.OutputDir, base+".csv")

	htmlFile, err := os.Create(htmlPath)
	if err != nil {
		return errors.NewReportError(htmlPath, err)
	}
	defer htmlFile.Close()
	if err := report.WriteHTML(htmlFile, result.Meta, result.Endpoints); err != nil {
		return errors.NewReportError(htmlPath, err)
	}
	result.HTMLPath = htmlPath
	s.log.Infof("HTML report written to %s", htmlPath)

	csvFile, err := os.Create(csvPath)
	if err != nil {
		return errors.NewReportError(csvPath, err)
	}
	defer csvFile.Close()
	if err := report.WriteCSV(csvFile, result.Endpoints); err != nil {
		return errors.NewReportError(csvPath, err)
	}
	result.CSVPath = csvPath
	s.log.Infof("CSV export written to %s", csvPath)

	return nil
}

// recordHistory appends a run summary to the history database.
func (s *Scanner) recordHistory(result *Result) error {
	store, err := history.Open(s.config.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(history.Record{
		When:        time.Now(),
		DocumentURL: s.config.DocumentURL,
		Title:       result.Meta.Title,
		Version:     result.Meta.Version,
		Total:       len(result.Endpoints),
		Probed:      result.Probed,
		Skipped:     result.Skipped,
		HTMLPath:    result.HTMLPath,
		CSVPath:     result.CSVPath,
	})
}

// Summary returns a short human-readable description of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d endpoints (%d probed, %d skipped)",
		len(r.Endpoints), r.Probed, r.Skipped)
}
