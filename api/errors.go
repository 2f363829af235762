package api

import (
	"errors"
	"fmt"
)

var errInvalidJSON = errors.New("body is not valid JSON")

// NetworkError is returned when no response could be read from the API:
// connection failure, timeout or cancellation
type NetworkError struct {
	Op       string
	Resource string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is returned when a successful response does not hold
// the expected JSON document
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned when a payload cannot be encoded as JSON,
// nothing was sent to the API
type EncodeError struct {
	Resource string
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Resource, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// StatusError reports an unexpected HTTP status
type StatusError struct {
	Op       string
	Resource string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.Resource, e.Status)
}
