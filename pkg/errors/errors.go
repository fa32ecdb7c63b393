// Package errors classifies the fatal failures of a conversion run.
//
// Missing inputs, an empty padstack table, unreadable tables and bad
// configuration abort the run with a Code the CLI prints next to the
// message. Per-record conversion problems never reach this package: the
// record is logged and skipped.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeMissingInput   Code = "MISSING_INPUT"
	ErrCodeEmptyPadstacks Code = "EMPTY_PADSTACKS"
	ErrCodeInvalidTable   Code = "INVALID_TABLE"
	ErrCodeParse          Code = "PARSE_ERROR"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeIO             Code = "IO_ERROR"
)

// Error is a fatal run error.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns a coded error caused by cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code found in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without code or cause. Uncoded errors
// are printed whole.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
