package graymap

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the decoder, the encoder and the conversion helpers.
// Use errors.Is to test for a kind.
var (
	ErrIO               = errors.New("i/o error")
	ErrFormat           = errors.New("invalid image format")
	ErrUnsupportedDepth = errors.New("unsupported color depth")
	ErrTruncatedData    = errors.New("truncated pixel data")
)

// Error describes the failure of one image conversion step.
type Error struct {
	Kind error  // one of the Err* kinds
	Path string // file the error relates to, if known
	Msg  string
	Err  error // underlying cause, if any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether the error is of the target kind.
func (e *Error) Is(target error) bool { return e.Kind == target }

func formatErrorf(format string, args ...any) error {
	return &Error{Kind: ErrFormat, Msg: fmt.Sprintf(format, args...)}
}

func ioError(err error) error {
	return &Error{Kind: ErrIO, Err: err}
}

// withPath attaches the file name to err, when err carries none yet.
func withPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Path == "" {
			e.Path = path
		}
		return err
	}
	return &Error{Kind: ErrIO, Path: path, Err: err}
}
