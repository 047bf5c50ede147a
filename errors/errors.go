package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// UnknownCode is the code given to foreign errors by FromError
const UnknownCode = 500

// Error is the single error type returned by the client. Code and Message carry
// either the remote status (domain errors) or a local diagnostic; the kind tells
// the caller which failure category it belongs to.
//
// Values are immutable: the With* methods return modified copies.
type Error struct {
	Code     int               `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`

	kind    Kind
	timeout bool
	cause   error
}

// Error renders "<kind>: code=<code>, message=<message>[, metadata={k=v}][, cause=<cause>]"
// with metadata keys sorted.
func (e *Error) Error() string {
	var b strings.Builder

	if e.kind != KindUnknown {
		b.WriteString(e.kind.String())
		b.WriteString(": ")
	}
	b.WriteString("code=" + strconv.Itoa(e.Code))
	b.WriteString(", message=" + e.Message)

	if len(e.Metadata) > 0 {
		b.WriteString(", metadata={")
		for i, k := range slices.Sorted(maps.Keys(e.Metadata)) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k + "=" + e.Metadata[k])
		}
		b.WriteByte('}')
	}

	if e.cause != nil {
		b.WriteString(", cause=" + e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches the kind sentinels (ErrTransport, ErrMalformedResponse, ErrDomain,
// ErrInvalidArgument) by kind, and any other *Error by code and message.
func (e *Error) Is(target error) bool {
	if k, ok := kindOfSentinel(target); ok {
		return e.kind == k
	}
	var other *Error
	return errors.As(target, &other) && e.Code == other.Code && e.Message == other.Message
}

// WithMetadata returns a copy with m merged into the metadata
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}
	c := e.copy()
	if c.Metadata == nil {
		c.Metadata = make(map[string]string, len(m))
	}
	maps.Copy(c.Metadata, m)
	return c
}

// WithCause returns a copy wrapping cause; a nil cause returns e itself
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}
	c := e.copy()
	c.cause = cause
	return c
}

// WithKind returns a copy classified as k.
func (e *Error) WithKind(k Kind) *Error {
	c := e.copy()
	c.kind = k
	return c
}

func (e *Error) copy() *Error {
	c := *e
	c.Metadata = maps.Clone(e.Metadata)
	return &c
}

func (e *Error) GetCode() int {
	return e.Code
}

func (e *Error) GetMessage() string {
	return e.Message
}

// GetKind returns the failure category.
func (e *Error) GetKind() Kind {
	return e.kind
}

// Timeout reports whether a transport error was caused by a deadline.
func (e *Error) Timeout() bool {
	return e.timeout
}

// GetMetadata returns a copy of the metadata, nil when there is none
func (e *Error) GetMetadata() map[string]string {
	if len(e.Metadata) == 0 {
		return nil
	}
	return maps.Clone(e.Metadata)
}

func (e *Error) GetCause() error {
	return e.cause
}

// New creates an unclassified error. format is used verbatim when no args are given.
func New(code int, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: code, Message: msg}
}

// FromError returns the first *Error in err's chain, or wraps err with UnknownCode.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(UnknownCode, "%v", err)
}

// Wrap attaches err as the cause of a new error; nil stays nil.
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return New(code, format, args...).WithCause(err)
}
