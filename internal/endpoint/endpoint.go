// Package endpoint defines the canonical endpoint model and the
// normalization and filtering steps that produce it.
package endpoint

// HTTP verbs the prober understands, in canonical order.
var Methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// IsMethod reports whether m (already upper-cased) is a known HTTP verb.
func IsMethod(m string) bool {
	for _, v := range Methods {
		if m == v {
			return true
		}
	}
	return false
}

// Endpoint is one documented operation. Created once by the normalizer
// and read-only afterwards; an outcome is attached via Probed.
type Endpoint struct {
	// Path is the specification-relative path template as declared,
	// unmodified (path parameters like {id} stay literal).
	Path string `json:"path"`

	// FullURL is Path resolved against the base URL; always absolute.
	FullURL string `json:"full_url"`

	// Method is the upper-cased HTTP verb.
	Method string `json:"method"`

	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	OperationID string   `json:"operation_id"`
	Tags        []string `json:"tags"`
}

// Name returns the human label for the endpoint: the summary, falling
// back to the operation ID.
func (e Endpoint) Name() string {
	if e.Summary != "" {
		return e.Summary
	}
	return e.OperationID
}

// Kind classifies a probe outcome. The set is closed: every probe ends
// in exactly one of these.
type Kind int

const (
	// KindSkipped marks an endpoint excluded by probe policy.
	KindSkipped Kind = iota
	// KindSuccess is a 2xx response.
	KindSuccess
	// KindRedirect is a 3xx response.
	KindRedirect
	// KindClientError is a 4xx response.
	KindClientError
	// KindServerError is a 5xx response.
	KindServerError
	// KindTimeout means no response within the bound.
	KindTimeout
	// KindConnectionFailure means the connection could not be established.
	KindConnectionFailure
	// KindRequestFailure is any other transport-level failure.
	KindRequestFailure
	// KindUnknownFailure is a failure not otherwise classified.
	KindUnknownFailure
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSkipped:
		return "skipped"
	case KindSuccess:
		return "success"
	case KindRedirect:
		return "redirect"
	case KindClientError:
		return "client_error"
	case KindServerError:
		return "server_error"
	case KindTimeout:
		return "timeout"
	case KindConnectionFailure:
		return "connection_failure"
	case KindRequestFailure:
		return "request_failure"
	default:
		return "unknown_failure"
	}
}

// Outcome is the result of probing (or skipping) one endpoint.
type Outcome struct {
	Kind Kind `json:"kind"`

	// Status is the literal HTTP status for completed responses, 0 otherwise.
	Status int `json:"status"`

	// Length is the response body size in bytes; 0 for error outcomes.
	Length int `json:"length"`
}

// Code returns the wire-facing integer convention used by the tabular
// export: the literal status for completed responses, 0 for skipped,
// and -1..-4 for the failure kinds.
func (o Outcome) Code() int {
	if o.Status > 0 {
		return o.Status
	}
	switch o.Kind {
	case KindTimeout:
		return -1
	case KindConnectionFailure:
		return -2
	case KindRequestFailure:
		return -3
	case KindUnknownFailure:
		return -4
	default:
		return 0
	}
}

// Completed reports whether the server actually responded.
func (o Outcome) Completed() bool {
	return o.Status > 0
}

// Skipped is the sentinel outcome for endpoints excluded from probing.
func Skipped() Outcome {
	return Outcome{Kind: KindSkipped}
}

// ClassifyStatus maps a literal HTTP status to its outcome. Statuses
// outside 200-599 keep their code but fall in the unknown bucket, which
// is how the report renders them.
func ClassifyStatus(status, length int) Outcome {
	o := Outcome{Status: status, Length: length}
	switch {
	case status >= 200 && status < 300:
		o.Kind = KindSuccess
	case status >= 300 && status < 400:
		o.Kind = KindRedirect
	case status >= 400 && status < 500:
		o.Kind = KindClientError
	case status >= 500 && status < 600:
		o.Kind = KindServerError
	default:
		o.Kind = KindUnknownFailure
	}
	return o
}

// Probed pairs an endpoint with its single outcome. Every endpoint that
// reaches the report renderer carries exactly one outcome.
type Probed struct {
	Endpoint
	Outcome Outcome `json:"outcome"`
}
