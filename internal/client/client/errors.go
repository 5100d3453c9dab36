package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTimeout      = errors.New("request timed out")
)

// APIError is a non-2xx response from the API. Message holds the text the
// server supplied and is empty when it supplied none.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d %s", e.Status, http.StatusText(e.Status))
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 and 403 responses.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// errorBody is the error envelope used by the API: {error, message, code}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func newAPIError(status int, body errorBody) *APIError {
	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	return &APIError{Status: status, Message: msg, Code: body.Code}
}

// Message extracts the human-readable text from err: the server's message
// for an *APIError, fallback for anything else.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsTimeout reports whether err is a client-side timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
