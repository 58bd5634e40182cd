// Package errors provides error types and classification for the API prober.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrorType categorizes errors for handling decisions.
type ErrorType int

const (
	// Unknown is an uncategorized error.
	Unknown ErrorType = iota
	// Timeout represents request timeout errors.
	Timeout
	// Connection represents errors establishing the connection (dial, DNS, reset).
	Connection
	// Request represents other transport or protocol failures during the exchange.
	Request
	// Cancelled represents context cancellation.
	Cancelled
	// Fetch represents a failure retrieving the specification document.
	Fetch
	// Decode represents a failure decoding the specification document.
	Decode
	// Report represents a failure persisting a rendered report.
	Report
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case Timeout:
		return "timeout"
	case Connection:
		return "connection"
	case Request:
		return "request"
	case Cancelled:
		return "cancelled"
	case Fetch:
		return "fetch"
	case Decode:
		return "decode"
	case Report:
		return "report"
	default:
		return "unknown"
	}
}

// ScanError represents a categorized error with its origin.
type ScanError struct {
	Type      ErrorType
	URL       string
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error during %s on %s: %s (caused by: %v)",
			e.Type.String(), e.Operation, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error during %s on %s: %s",
		e.Type.String(), e.Operation, e.URL, e.Message)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target by type.
func (e *ScanError) Is(target error) bool {
	t, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// New creates a new ScanError.
func New(errType ErrorType, url, operation, message string, cause error) *ScanError {
	return &ScanError{
		Type:      errType,
		URL:       url,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewFetchError creates a document fetch error. Fetch errors are fatal.
func NewFetchError(url string, cause error) *ScanError {
	return New(Fetch, url, "fetch_document", "could not retrieve specification document", cause)
}

// NewDecodeError creates a document decode error. Decode errors are fatal.
func NewDecodeError(url string, cause error) *ScanError {
	return New(Decode, url, "decode_document", "could not decode specification document", cause)
}

// NewReportError creates a report persistence error.
func NewReportError(path string, cause error) *ScanError {
	return New(Report, path, "write_report", "could not write report", cause)
}

// Categorize determines the error type from a generic error.
func Categorize(err error, url string) *ScanError {
	if err == nil {
		return nil
	}

	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr
	}

	if errors.Is(err, context.Canceled) {
		return New(Cancelled, url, "request", "operation cancelled", err)
	}

	if isTimeout(err) {
		return New(Timeout, url, "request", "request timed out", err)
	}

	if isConnectionError(err) {
		return New(Connection, url, "request", "connection failed", err)
	}

	if isRequestError(err) {
		return New(Request, url, "request", "request failed", err)
	}

	return New(Unknown, url, "request", err.Error(), err)
}

// isTimeout checks if an error is a timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isConnectionError checks if an error is a connection-establishment failure.
func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable")
}

// isRequestError checks if an error happened during an established exchange.
func isRequestError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "malformed") ||
		strings.Contains(errStr, "bad response") ||
		strings.Contains(errStr, "EOF")
}

// GetErrorType extracts the error type from an error.
func GetErrorType(err error) ErrorType {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type
	}
	return Unknown
}

// IsFatal reports whether an error must abort the whole run.
// Only document fetch/decode failures qualify; probe-level failures
// are recorded as outcomes instead.
func IsFatal(err error) bool {
	switch GetErrorType(err) {
	case Fetch, Decode:
		return true
	default:
		return false
	}
}
