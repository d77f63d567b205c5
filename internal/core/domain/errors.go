package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies a domain error so the transport layer can map it to a
// status code deterministically. Messages pass through to the caller verbatim.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindBadRequest: malformed identifier or missing required field.
	KindBadRequest
	// KindUnauthorized: missing or invalid credentials.
	KindUnauthorized
	// KindForbidden: authenticated but explicitly disallowed.
	KindForbidden
	// KindNotFound: target absent, or existence deliberately hidden from
	// the caller. Callers cannot tell the two apart.
	KindNotFound
	// KindConflict: unique-constraint violation.
	KindConflict
	// KindInvalid: field-level validation failure.
	KindInvalid
)

// Error is the tagged error type returned by all core operations.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequestf(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func Invalidf(format string, args ...any) error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports a field-level validation failure naming the
// offending fields, sorted for stable messages.
func ValidationError(fields ...string) error {
	sort.Strings(fields)
	return Invalidf("Validation error on field(s): %s", strings.Join(fields, ","))
}

// KindOf returns the kind of err, or KindUnknown for errors that did not
// originate in the domain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
