// Package errors defines codegraph's error taxonomy (spec §7): a closed
// set of Kinds, not Go types, so callers can switch on Kind without type
// assertions while every error still satisfies the standard error
// interface and participates in errors.Is/errors.As via Unwrap.
//
// The shape follows the teacher's internal/errors package
// (standardbeagle/lci), consolidated into a single struct that carries a
// Kind plus enough context (file path, operation, timestamp) to build a
// user-visible message without ever leaking an internal stack trace.
package errors

import (
	"fmt"
	"time"
)

// Kind is one of spec §7's error kinds.
type Kind string

const (
	NotInitialized       Kind = "not_initialized"
	AlreadyInitialized   Kind = "already_initialized"
	ParseFailure         Kind = "parse_failure"
	LanguageUnsupported  Kind = "language_unsupported"
	OversizedFile        Kind = "oversized_file"
	StoreIntegrity       Kind = "store_integrity"
	LockContention       Kind = "lock_contention"
	PathEscape           Kind = "path_escape"
	ResolutionAmbiguity  Kind = "resolution_ambiguity"
	EmbeddingUnavailable Kind = "embedding_unavailable"
)

// Error is codegraph's single error type. Operation and FilePath give
// enough context for a short, user-visible message; Underlying carries
// the cause for errors.Is/errors.As.
type Error struct {
	Kind       Kind
	Operation  string
	FilePath   string
	Underlying error
	Timestamp  time.Time
}

// New creates an Error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{
		Kind:       kind,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithFile attaches the offending file path and returns the receiver for
// chaining, mirroring the teacher's WithFile/WithRecoverable builder style.
func (e *Error) WithFile(path string) *Error {
	e.FilePath = path
	return e
}

// Error implements the error interface. Never includes an internal stack;
// per spec §7 user-visible failures carry only kind, file path and a
// short message.
func (e *Error) Error() string {
	if e.FilePath != "" {
		if e.Underlying != nil {
			return fmt.Sprintf("%s: %s failed for %s: %v", e.Kind, e.Operation, e.FilePath, e.Underlying)
		}
		return fmt.Sprintf("%s: %s failed for %s", e.Kind, e.Operation, e.FilePath)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s failed: %v", e.Kind, e.Operation, e.Underlying)
	}
	return fmt.Sprintf("%s: %s failed", e.Kind, e.Operation)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is an *Error with the same Kind — lets
// callers write errors.Is(err, &errors.Error{Kind: errors.PathEscape}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsKind reports whether err is a codegraph *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if ce, ok := err.(*Error); ok {
			return ce.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Surfaced reports whether a Kind is a batch-wide failure that propagation
// policy (spec §7) surfaces to the caller rather than containing per-file.
func Surfaced(kind Kind) bool {
	switch kind {
	case StoreIntegrity, LockContention, PathEscape, NotInitialized, AlreadyInitialized:
		return true
	default:
		return false
	}
}
