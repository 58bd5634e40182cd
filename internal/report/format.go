// Package report renders the aggregated endpoint sequence as a
// browsable HTML page and a flat CSV export.
package report

import (
	"fmt"
	"strconv"

	"github.com/goodric/api-docs-tool/internal/endpoint"
)

// StatusLabel returns the human status for an outcome: the literal
// code for completed responses, a failure word otherwise.
func StatusLabel(o endpoint.Outcome) string {
	if code := o.Code(); code > 0 {
		return strconv.Itoa(code)
	}
	switch o.Kind {
	case endpoint.KindTimeout:
		return "Timeout"
	case endpoint.KindConnectionFailure:
		return "Connection Error"
	case endpoint.KindRequestFailure:
		return "Request Error"
	case endpoint.KindUnknownFailure:
		return "Unknown Error"
	default:
		return "Skipped"
	}
}

// statusClass maps an outcome to its CSS class in the HTML report.
func statusClass(o endpoint.Outcome) string {
	switch o.Kind {
	case endpoint.KindSuccess:
		return "status-success"
	case endpoint.KindRedirect:
		return "status-redirect"
	case endpoint.KindClientError:
		return "status-client-error"
	case endpoint.KindServerError:
		return "status-server-error"
	case endpoint.KindSkipped:
		return "status-skip"
	case endpoint.KindTimeout:
		return "status-timeout"
	case endpoint.KindConnectionFailure, endpoint.KindRequestFailure:
		return "status-error"
	default:
		return "status-unknown"
	}
}

// FormatLength renders a body size for display. Skipped and failed
// probes show a literal "/" instead of a number. Boundaries are exact:
// 1023 -> "1023", 1024 -> "1.0K", 1048575 -> "1024.0K", 1048576 -> "1.0M".
func FormatLength(o endpoint.Outcome) string {
	if o.Code() <= 0 {
		return "/"
	}
	n := o.Length
	switch {
	case n < 1024:
		return strconv.Itoa(n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1fK", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/(1024*1024))
	}
}
