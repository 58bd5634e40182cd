package apiget

import (
	"time"

	"github.com/goodric/api-docs-tool/internal/logger"
)

// Option is a functional option for configuring the Scanner.
type Option func(*Scanner) error

// WithConfig sets the entire configuration.
func WithConfig(config *Config) Option {
	return func(s *Scanner) error {
		s.config = config
		return nil
	}
}

// WithDocumentURL sets the specification document URL.
func WithDocumentURL(url string) Option {
	return func(s *Scanner) error {
		s.config.DocumentURL = url
		return nil
	}
}

// WithBaseURL overrides base-URL resolution.
func WithBaseURL(url string) Option {
	return func(s *Scanner) error {
		s.config.BaseURL = url
		return nil
	}
}

// WithMethodFilter sets the raw method allow-list string.
func WithMethodFilter(raw string) Option {
	return func(s *Scanner) error {
		s.config.MethodFilter = raw
		return nil
	}
}

// WithLimit caps how many endpoints are probed.
func WithLimit(n int) Option {
	return func(s *Scanner) error {
		if n < 0 {
			n = 0
		}
		s.config.Limit = n
		return nil
	}
}

// WithIncludeDelete opts in to probing DELETE endpoints.
func WithIncludeDelete(include bool) Option {
	return func(s *Scanner) error {
		s.config.IncludeDelete = include
		return nil
	}
}

// WithSkipProbing disables probing entirely.
func WithSkipProbing(skip bool) Option {
	return func(s *Scanner) error {
		s.config.SkipProbing = skip
		return nil
	}
}

// WithProbeTimeout sets the per-probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(s *Scanner) error {
		s.config.ProbeTimeout = d
		return nil
	}
}

// WithWorkers sets probe concurrency.
func WithWorkers(n int) Option {
	return func(s *Scanner) error {
		if n < 1 {
			n = 1
		}
		s.config.Workers = n
		return nil
	}
}

// WithDelay sets the pacing interval between probes.
func WithDelay(d time.Duration) Option {
	return func(s *Scanner) error {
		s.config.Delay = d
		return nil
	}
}

// WithOutputDir sets the report output directory.
func WithOutputDir(dir string) Option {
	return func(s *Scanner) error {
		s.config.OutputDir = dir
		return nil
	}
}

// WithHistory enables the run-history database at path.
func WithHistory(path string) Option {
	return func(s *Scanner) error {
		s.config.HistoryPath = path
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scanner) error {
		s.log = l
		return nil
	}
}

// WithVerbose enables debug logging.
func WithVerbose(verbose bool) Option {
	return func(s *Scanner) error {
		s.config.Verbose = verbose
		return nil
	}
}
