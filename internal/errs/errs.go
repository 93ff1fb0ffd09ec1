// Package errs defines the error codes reported by kvcs operations.
//
// Every failure leaving a core operation carries exactly one code, attached with
// the jmgilman/go/errors constructors. Callers add context with fmt.Errorf and %w,
// which keeps the code reachable through Is.
package errs

import (
	"fmt"

	perrors "github.com/jmgilman/go/errors"
)

// Error codes for the repository taxonomy.
const (
	CodeNotInitialized    perrors.ErrorCode = "NOT_INITIALIZED"
	CodeObjectNotFound                      = perrors.CodeNotFound
	CodeCommitNotFound    perrors.ErrorCode = "COMMIT_NOT_FOUND"
	CodeRefNotFound       perrors.ErrorCode = "REF_NOT_FOUND"
	CodeAlreadyExists                       = perrors.CodeAlreadyExists
	CodeInvalidArgument                     = perrors.CodeInvalidInput
	CodeNoChanges         perrors.ErrorCode = "NO_CHANGES"
	CodeEmptyStash        perrors.ErrorCode = "EMPTY_STASH"
	CodeInvalidStashIndex perrors.ErrorCode = "INVALID_STASH_INDEX"
	CodeAmbiguous         perrors.ErrorCode = "AMBIGUOUS"
	CodeCorruptState      perrors.ErrorCode = "CORRUPT_STATE"
)

// New creates an error with the given code.
func New(code perrors.ErrorCode, format string, args ...any) error {
	return perrors.Newf(code, format, args...)
}

// Wrap attaches code to cause.
func Wrap(cause error, code perrors.ErrorCode, format string, args ...any) error {
	return perrors.Wrap(cause, code, fmt.Sprintf(format, args...))
}

// Is reports whether err carries code.
func Is(err error, code perrors.ErrorCode) bool {
	return err != nil && perrors.GetCode(err) == code
}
