package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Kind classifies a failed API call. Every error returned by the client
// carries exactly one kind, so callers can branch without string matching.
type Kind string

const (
	// KindTimeout: the request exceeded its deadline. Retryable by the
	// user, never automatically.
	KindTimeout Kind = "timeout"
	// KindConnection: transport-level failure, the server never answered.
	KindConnection Kind = "connection"
	// KindHTTP: the server answered with a non-2xx status.
	KindHTTP Kind = "http"
	// KindInvalidSession: the cached token was rejected by the profile
	// endpoint. Credentials must be discarded.
	KindInvalidSession Kind = "invalid_session"
)

// Error is the normalized failure returned by every client method.
// Message is always human-readable.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf returns the classification of err, or "" if err did not originate
// from this client.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// statusMessages are the fallbacks used when the server's error body cannot
// be decoded.
var statusMessages = map[int]string{
	400: "Invalid request. Check the submitted data.",
	401: "Invalid credentials or expired session.",
	403: "You do not have permission to perform this action.",
	404: "Resource not found.",
	500: "Internal server error. Try again later.",
	503: "Server temporarily unavailable. Try again later.",
}

// messageText decodes the backend's "message" field, which may be a plain
// string or an array of strings (one per validation failure). Arrays are
// joined with newlines.
type messageText string

func (m *messageText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = messageText(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*m = messageText(strings.Join(list, "\n"))
		return nil
	}

	return fmt.Errorf("unsupported message payload: %s", data)
}

// errorBody is the structured error shape the backend produces.
type errorBody struct {
	StatusCode int         `json:"statusCode"`
	Message    messageText `json:"message"`
	Err        string      `json:"error"`
}

// newHTTPError builds an Error for a non-2xx response, preferring the
// decoded body message and falling back to a canned per-status message.
func newHTTPError(status int, body []byte) *Error {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return &Error{Kind: KindHTTP, Status: status, Message: string(parsed.Message)}
	}

	if msg, ok := statusMessages[status]; ok {
		return &Error{Kind: KindHTTP, Status: status, Message: msg}
	}
	return &Error{Kind: KindHTTP, Status: status, Message: fmt.Sprintf("HTTP error %d", status)}
}

// newTransportError distinguishes a deadline hit from a server that could
// not be reached at all.
func newTransportError(err error) *Error {
	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Message: "The request timed out. Try again."}
	}
	return &Error{
		Kind:    KindConnection,
		Message: "Could not connect to the server. Check that it is running and that the server address is correct.",
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	// A deadline that expires mid-body surfaces as a net.Error from the
	// response reader, not as a url.Error.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
