package textnorm

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes reported by file operations. Callers decide per-file
// continuation from the code alone.
const (
	EInternal = "internal error"
	ENotFound = "not found"
	EDecode   = "decode failure"
	EInvalid  = "invalid"
)

// Error is the error struct of textnorm.
//
// The Code targets automated handlers so that a batch can decide whether to
// continue with the next file. Msg is a human-readable message. Op names the
// operation that failed, and Err chains the underlying cause.
//
// To report a file that is not valid text,
//
//	&Error{
//	    Code: EDecode,
//	    Op:   "normalize.ConvertCRLF",
//	    Msg:  fmt.Sprintf("cannot decode %s", path),
//	    Err:  err,
//	}
type Error struct {
	Code string
	Msg  string
	Op   string
	Err  error
}

// Error implements the error interface by writing out the recursive messages.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		fmt.Fprintf(&b, "<%s>", e.Code)
	}
	return b.String()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the root error, if available; otherwise returns EInternal.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return EInternal
	}
	if e == nil {
		return ""
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Err != nil {
		return ErrorCode(e.Err)
	}
	return EInternal
}

// ErrorOp returns the op of the error, if available; otherwise return empty string.
func ErrorOp(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) || e == nil {
		return ""
	}
	if e.Op != "" {
		return e.Op
	}
	if e.Err != nil {
		return ErrorOp(e.Err)
	}
	return ""
}

// ErrorMessage returns the human-readable message of the error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return "An internal error has occurred."
	}
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return ErrorMessage(e.Err)
	}
	return "An internal error has occurred."
}

// IsDecode reports whether err is a decode failure.
func IsDecode(err error) bool {
	return ErrorCode(err) == EDecode
}

// IsNotFound reports whether err is a missing-input failure.
func IsNotFound(err error) bool {
	return ErrorCode(err) == ENotFound
}
