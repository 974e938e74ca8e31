package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// ConnectionError wraps transport-level failures (DNS, refused
// connection, timeout) so callers can word them differently from
// server faults.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("api: connection failed during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// newAPIError extracts a user-facing message from an error response
// body: a structured {"error": ...} field first, then the raw body
// text, then a generic status message.
func newAPIError(status int, body []byte, requestID string) *APIError {
	message := ""

	var structured struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Error != "" {
			message = structured.Error
		} else if structured.Message != "" {
			message = structured.Message
		}
	}

	if message == "" {
		text := strings.TrimSpace(string(body))
		if text != "" && utf8.ValidString(text) && len(text) <= 512 {
			message = text
		}
	}

	if message == "" {
		message = fmt.Sprintf("HTTP error, status %d", status)
	}

	return &APIError{Status: status, Message: message, RequestID: requestID}
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsConnection reports whether err is a transport failure rather than
// a backend response.
func IsConnection(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// UserMessage maps an error to the wording shown in alerts: specific
// for connectivity and credential failures, the server's own message
// where one exists, generic otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsConnection(err) {
		return "Cannot reach the server. Check your connection and try again."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			return "Your session has expired. Please log in again."
		case apiErr.Status >= 500:
			return "The server hit a problem. Please try again shortly."
		default:
			return apiErr.Message
		}
	}
	return "Something went wrong. Please try again."
}
