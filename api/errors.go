package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error types for classifying gateway failures.

// NetworkError represents a transport or server failure on a gateway call.
// Message carries the server's structured error text when one was present,
// otherwise a generic fallback.
type NetworkError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.err
}

// NewNetworkError wraps an error as a network failure.
func NewNetworkError(statusCode int, message string, err error) error {
	return &NetworkError{StatusCode: statusCode, Message: message, err: err}
}

// UploadError represents a failure of the asset upload step specifically,
// kept distinct from save failures so callers can report them separately.
type UploadError struct {
	err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.err)
}

func (e *UploadError) Unwrap() error {
	return e.err
}

// NewUploadError wraps an error as an upload failure.
func NewUploadError(err error) error {
	return &UploadError{err: err}
}

// NotFoundError indicates an edit target that is absent from the currently
// loaded collection.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNetwork returns true if the error is a network failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsUpload returns true if the error is an upload failure.
func IsUpload(err error) bool {
	var ue *UploadError
	return errors.As(err, &ue)
}

// IsNotFound returns true if the error is a missing edit target.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

const genericErrorMessage = "unknown network error"

// serverMessage extracts the human-readable message from the service's
// {"error": ...} payload. The error field is usually a string but the
// service emits structured validation details as well; those are flattened
// to their JSON text.
func serverMessage(body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return genericErrorMessage
	}

	var text string
	if err := json.Unmarshal(envelope.Error, &text); err == nil {
		return text
	}
	return string(envelope.Error)
}
