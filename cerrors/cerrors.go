// (c) Copyright 2019 Hewlett Packard Enterprise Development LP

// Package cerrors defines the typed error taxonomy used across the triage
// collector: BadPath, OsError, BufferTooSmall, Unsupported, and
// ArchiveError, plus the generic Internal/Unimplemented carry-overs.
package cerrors

import (
	"fmt"
	"strconv"
)

// ErrorCode enumerates the kinds of errors the collector can produce.
type ErrorCode int

const (
	// OK indicates no error.
	OK ErrorCode = iota
	// BadPath indicates a malformed path: no drive letter, or non-UTF-8.
	BadPath
	// OsError wraps a failing OS call: volume open, geometry query,
	// extent retrieval, seek, or read.
	OsError
	// BufferTooSmall indicates the caller supplied a buffer smaller than
	// one cluster.
	BufferTooSmall
	// Unsupported indicates a nonzero starting VCN or a sparse extent.
	Unsupported
	// ArchiveError indicates the underlying archive writer failed.
	ArchiveError
	// Internal indicates a condition outside the above taxonomy, such as
	// a nil collaborator.
	Internal
	// Unimplemented indicates a code path intentionally left unbuilt.
	Unimplemented
	_maxCode
)

var codeNames = map[ErrorCode]string{
	OK:             "OK",
	BadPath:        "BadPath",
	OsError:        "OsError",
	BufferTooSmall: "BufferTooSmall",
	Unsupported:    "Unsupported",
	ArchiveError:   "ArchiveError",
	Internal:       "Internal",
	Unimplemented:  "Unimplemented",
}

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// CollectorError is a typed error carrying a code, a message, and an
// optional wrapped cause (typically a syscall.Errno from an OS call).
type CollectorError struct {
	Code  ErrorCode `json:"code"`
	Text  string    `json:"text"`
	Cause error     `json:"-"`
}

// NewError builds a CollectorError from a code and a variadic set of
// format arguments (mirroring the teacher's NewChapiError constructor):
// a trailing error argument, if present, becomes Cause.
func NewError(code ErrorCode, args ...interface{}) *CollectorError {
	e := &CollectorError{Code: code}
	var parts []interface{}
	for _, a := range args {
		if err, ok := a.(error); ok && e.Cause == nil {
			e.Cause = err
			continue
		}
		parts = append(parts, a)
	}
	if len(parts) > 0 {
		e.Text = fmt.Sprint(parts...)
	} else {
		e.Text = code.String()
	}
	return e
}

// NewErrorf builds a CollectorError with a formatted message.
func NewErrorf(code ErrorCode, format string, args ...interface{}) *CollectorError {
	return &CollectorError{Code: code, Text: fmt.Sprintf(format, args...)}
}

// Wrap builds an OsError CollectorError from an arbitrary OS-call error.
// An error that is already a *CollectorError is returned unchanged,
// keeping its own code; a nil error yields nil.
func Wrap(err error) *CollectorError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CollectorError); ok {
		return ce
	}
	return &CollectorError{Code: OsError, Text: err.Error(), Cause: err}
}

// Error implements the error interface.
func (e *CollectorError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Text, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Text)
}

// Unwrap allows errors.Is/errors.As to reach the wrapped cause.
func (e *CollectorError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ErrorCode returns the error's code, or OK if e is nil.
func (e *CollectorError) ErrorCode() ErrorCode {
	if e == nil {
		return OK
	}
	return e.Code
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	ce, ok := err.(*CollectorError)
	if !ok {
		return false
	}
	return ce.ErrorCode() == code
}
