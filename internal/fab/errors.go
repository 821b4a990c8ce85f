package fab

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API error.
type Kind int

const (
	// KindAPI covers non-2xx responses not covered by a more specific kind.
	KindAPI Kind = iota

	// KindAuthentication covers HTTP 401 and 403.
	KindAuthentication

	// KindNotFound covers HTTP 404 and resolution steps that find no
	// matching entry.
	KindNotFound

	// KindNetwork covers connection failures, timeouts and other
	// transport-level errors.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not found"
	case KindNetwork:
		return "network"
	default:
		return "api"
	}
}

// Error is the error type for all API failures.
//
// Messages are deliberately sparse: they carry the logical endpoint name,
// the HTTP status (when there is one) and a generic cause. Cookie values,
// tokens and request headers never appear in an Error.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Endpoint is the logical endpoint name (e.g. "library_search"),
	// not the full URL.
	Endpoint string

	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int

	// Msg is a short, credential-free description.
	Msg string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Endpoint, e.Msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Msg)
}

// IsAuthentication reports whether err is an authentication failure
// (HTTP 401/403).
func IsAuthentication(err error) bool { return hasKind(err, KindAuthentication) }

// IsNotFound reports whether err is a not-found failure: HTTP 404, or a
// resolution step that found no matching format or manifest entry.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsAPI reports whether err is a non-2xx API failure other than
// authentication or not-found.
func IsAPI(err error) bool { return hasKind(err, KindAPI) }

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool { return hasKind(err, KindNetwork) }

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// notFoundError builds a KindNotFound error for a resolution step that
// produced no match (as opposed to an HTTP 404).
func notFoundError(endpoint, msg string) *Error {
	return &Error{Kind: KindNotFound, Endpoint: endpoint, Msg: msg}
}

// statusError maps a non-2xx HTTP status to the error taxonomy.
func statusError(endpoint string, statusCode int) *Error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &Error{
			Kind:       KindAuthentication,
			Endpoint:   endpoint,
			StatusCode: statusCode,
			Msg:        "authentication failed, credentials may have expired",
		}
	case statusCode == http.StatusNotFound:
		return &Error{
			Kind:       KindNotFound,
			Endpoint:   endpoint,
			StatusCode: statusCode,
			Msg:        "resource not found",
		}
	default:
		return &Error{
			Kind:       KindAPI,
			Endpoint:   endpoint,
			StatusCode: statusCode,
			Msg:        "request failed",
		}
	}
}

// networkError wraps a transport failure. Only the error's class is kept
// in the message; URLs inside transport errors may carry query strings,
// so the underlying text is not echoed verbatim.
func networkError(endpoint string, cause error) *Error {
	msg := "connection error"
	if isTimeout(cause) {
		msg = "request timed out"
	}
	return &Error{Kind: KindNetwork, Endpoint: endpoint, Msg: msg}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
