package api

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHTTPError_StringMessage(t *testing.T) {
	e := newHTTPError(400, []byte(`{"statusCode":400,"message":"email must be valid","error":"Bad Request"}`))
	require.Equal(t, KindHTTP, e.Kind)
	require.Equal(t, 400, e.Status)
	require.Equal(t, "email must be valid", e.Message)
}

func TestNewHTTPError_ArrayMessageJoinedWithNewlines(t *testing.T) {
	e := newHTTPError(400, []byte(`{"statusCode":400,"message":["name should not be empty","email must be valid"],"error":"Bad Request"}`))
	require.Equal(t, "name should not be empty\nemail must be valid", e.Message)
}

func TestNewHTTPError_FallbackMessages(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, "Invalid request. Check the submitted data."},
		{401, "Invalid credentials or expired session."},
		{403, "You do not have permission to perform this action."},
		{404, "Resource not found."},
		{500, "Internal server error. Try again later."},
		{503, "Server temporarily unavailable. Try again later."},
		{418, "HTTP error 418"},
	}

	for _, tc := range tests {
		e := newHTTPError(tc.status, []byte("<html>not json</html>"))
		require.Equal(t, tc.want, e.Message, "status %d", tc.status)
		require.Equal(t, tc.status, e.Status)
	}

	// Distinct statuses must produce distinct canned messages.
	seen := map[string]int{}
	for _, status := range []int{400, 401, 403, 404, 500, 503} {
		msg := newHTTPError(status, nil).Message
		if prev, dup := seen[msg]; dup {
			t.Fatalf("statuses %d and %d share message %q", prev, status, msg)
		}
		seen[msg] = status
	}
}

func TestNewHTTPError_EmptyMessageFieldFallsBack(t *testing.T) {
	e := newHTTPError(500, []byte(`{"statusCode":500,"message":"","error":"Internal"}`))
	require.Equal(t, "Internal server error. Try again later.", e.Message)
}

func TestNewTransportError_Timeout(t *testing.T) {
	e := newTransportError(context.DeadlineExceeded)
	require.Equal(t, KindTimeout, e.Kind)

	wrapped := &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}
	require.Equal(t, KindTimeout, newTransportError(wrapped).Kind)
}

func TestNewTransportError_Connection(t *testing.T) {
	e := newTransportError(errors.New("dial tcp 127.0.0.1:9: connect: connection refused"))
	require.Equal(t, KindConnection, e.Kind)
	require.Contains(t, e.Message, "Could not connect")
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindTimeout, KindOf(&Error{Kind: KindTimeout}))
	require.Equal(t, Kind(""), KindOf(errors.New("plain")))
	require.Equal(t, Kind(""), KindOf(nil))
}
