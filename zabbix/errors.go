package zabbix

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrInvalidConfig is returned when a required configuration field is
// missing or malformed. No call is attempted.
var ErrInvalidConfig = errors.New("invalid configuration")

// TransportError reports a network- or HTTP-status-level failure.
// The call is not retried; retry policy belongs to the caller.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when the request never
	// reached the server (DNS, timeout, refused connection).
	StatusCode int
	// Body holds a snippet of the response body, when one was received.
	Body string

	Cause error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport failure: %v", e.Cause)
	}
	if e.Body != "" {
		return fmt.Sprintf("unexpected HTTP status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ProtocolError reports a response body that is not valid JSON-RPC.
type ProtocolError struct {
	// Body holds a snippet of the offending body for diagnosis.
	Body string

	Cause error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("malformed JSON-RPC response: %s", e.Body)
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// APIError is the error object reported by Zabbix itself, surfaced
// verbatim so the agent can relay actionable detail, such as a token
// lacking permission for a method.
type APIError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *APIError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("zabbix error %d: %s %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("zabbix error %d: %s", e.Code, e.Message)
}
