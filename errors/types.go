package errors

import (
	"context"
	"errors"
	"net"
	"strconv"
)

// Kind classifies a failed call.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport: the exchange failed before a body was available.
	KindTransport
	// KindMalformedResponse: a body arrived but is not a valid envelope.
	KindMalformedResponse
	// KindDomain: a valid envelope reported a non-200 status_code.
	KindDomain
	// KindInvalidArgument: the call was rejected before any I/O.
	KindInvalidArgument
)

// String returns the kind name used in error messages and metric labels.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport_error"
	case KindMalformedResponse:
		return "malformed_response"
	case KindDomain:
		return "domain_error"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrTransport         = errors.New("transport error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrDomain            = errors.New("domain error")
	ErrInvalidArgument   = errors.New("invalid argument")
)

func kindOfSentinel(target error) (Kind, bool) {
	switch target {
	case ErrTransport:
		return KindTransport, true
	case ErrMalformedResponse:
		return KindMalformedResponse, true
	case ErrDomain:
		return KindDomain, true
	case ErrInvalidArgument:
		return KindInvalidArgument, true
	}
	return KindUnknown, false
}

// Transport wraps a network level failure. The timeout flag is derived from the
// cause: context deadlines and net.Error timeouts both count.
func Transport(cause error, format string, args ...any) *Error {
	e := New(0, format, args...).WithCause(cause)
	e.kind = KindTransport
	e.timeout = isTimeoutCause(cause)
	return e
}

// MalformedResponse reports a body that could not be interpreted as an envelope.
// httpStatus is the status line code of the response that carried it.
func MalformedResponse(httpStatus int, cause error, format string, args ...any) *Error {
	e := New(httpStatus, format, args...).WithCause(cause)
	e.kind = KindMalformedResponse
	return e.WithMetadata(map[string]string{"http_status": strconv.Itoa(httpStatus)})
}

// Domain reports an error status returned inside a well-formed envelope.
func Domain(code int, message string) *Error {
	e := New(code, "%s", message)
	e.kind = KindDomain
	return e
}

// InvalidArgument reports caller misuse detected before any request is sent.
func InvalidArgument(format string, args ...any) *Error {
	e := New(400, format, args...)
	e.kind = KindInvalidArgument
	return e
}

func isTimeoutCause(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
