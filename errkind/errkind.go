// Package errkind defines the error taxonomy shared by every codec in this
// module: a small, closed set of Kinds that callers can branch on with
// errors.Is, plus a wrapped cause for diagnostics.
//
// A codec that returns an errkind.Error is considered poisoned: callers must
// discard the instance and, if they want to keep going, construct a fresh
// one. This mirrors the sentinel-plus-wrap style of the encoding package this
// module's codecs are derived from (ErrNotSupported wrapped with
// fmt.Errorf("%w: ...")), generalized to more than one sentinel.
package errkind

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// General covers any other contract violation, reported with a message.
	General Kind = iota

	// EndOfInput means the stream was truncated: not enough bytes remained
	// for a value or a header.
	EndOfInput

	// InvalidFormat means the input was malformed: a bad VLQ continuation
	// sequence, a miniblock size that isn't a multiple of 8, an impossible
	// bit width, a bad page magic.
	InvalidFormat

	// UnsupportedEncoding means the requested encoding/type pair is not
	// implemented, e.g. DELTA_BINARY_PACKED requested for a non-integer
	// type. Constructors return this at construction time rather than
	// waiting for the first Get/Put call to discover it.
	UnsupportedEncoding

	// SizeMismatch means a decompressed payload's length didn't match the
	// size declared in its page header.
	SizeMismatch
)

func (k Kind) String() string {
	switch k {
	case EndOfInput:
		return "end of input"
	case InvalidFormat:
		return "invalid format"
	case UnsupportedEncoding:
		return "unsupported encoding"
	case SizeMismatch:
		return "size mismatch"
	default:
		return "general error"
	}
}

// Sentinel errors, one per Kind, so that callers can write
// errors.Is(err, errkind.ErrEndOfInput) against any error this module
// returns, whether or not they hold a concrete *Error.
var (
	ErrGeneral             = errors.New("general error")
	ErrEndOfInput          = errors.New("end of input")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrSizeMismatch        = errors.New("size mismatch")
)

var sentinelByKind = [...]error{
	General:             ErrGeneral,
	EndOfInput:          ErrEndOfInput,
	InvalidFormat:       ErrInvalidFormat,
	UnsupportedEncoding: ErrUnsupportedEncoding,
	SizeMismatch:        ErrSizeMismatch,
}

// Error is the concrete error type returned by every codec in this module.
// Op identifies the component and operation that failed (e.g.
// "rle.Decoder.Get"); Err, when set, wraps an underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// New constructs an Error of the given kind for the given operation, with no
// wrapped cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap constructs an Error of the given kind for the given operation,
// wrapping err as the underlying cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf is like Wrap but builds the wrapped cause from a format string.
func Errorf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel associated with e's Kind, so
// that errors.Is(err, errkind.ErrEndOfInput) works without the caller
// needing to unwrap down to a concrete Err cause.
func (e *Error) Is(target error) bool {
	return target == sentinelByKind[e.Kind]
}

// Is reports whether err (or anything it wraps) is an *Error of kind k.
func Is(err error, k Kind) bool {
	return errors.Is(err, sentinelByKind[k])
}
