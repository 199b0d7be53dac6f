package dal

import (
	"errors"
	"fmt"
)

// Sentinel errors for data file loading.
var (
	ErrFileIO = errors.New("file i/o error")
	ErrFormat = errors.New("format error")
)

// LoadError describes why a catalog or rate file could not be loaded.
// Kind is ErrFileIO or ErrFormat; Err is the underlying cause, if any.
type LoadError struct {
	Path   string
	Line   int
	Reason string
	Kind   error
	Err    error
}

func (e *LoadError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(":%d", e.Line)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func formatError(line int, reason string, err error) *LoadError {
	return &LoadError{Line: line, Reason: reason, Kind: ErrFormat, Err: err}
}

func fileError(path string, err error) *LoadError {
	return &LoadError{Path: path, Kind: ErrFileIO, Err: err}
}

// withPath attaches the file path to loader errors raised by the readers.
func withPath(path string, err error) error {
	var le *LoadError
	if errors.As(err, &le) && le.Path == "" {
		le.Path = path
	}
	return err
}
