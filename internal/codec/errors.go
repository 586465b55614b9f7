package codec

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errMissing      = errors.New("missing field")
	errNull         = errors.New("null entry")
	errTrailingData = errors.New("trailing data after document")
)

// DecodeError reports a structurally malformed drawing document.
type DecodeError struct {
	// Field is the JSON path of the offending value, when known.
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode drawing: %v", e.Err)
	}
	return fmt.Sprintf("decode drawing: %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErr(err error) *DecodeError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{Field: typeErr.Field, Err: err}
	}
	return &DecodeError{Err: err}
}

// StorageIOError reports a failure reading or writing the drawing file.
// A missing file on read is not an error.
type StorageIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageIOError) Error() string {
	return fmt.Sprintf("%s drawing %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageIOError) Unwrap() error { return e.Err }
