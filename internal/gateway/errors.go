package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind tags the way a gateway call failed.
type Kind int

const (
	// KindRequest means the request could not be built.
	KindRequest Kind = iota + 1
	// KindTransport means no response was received.
	KindTransport
	// KindStatus means the API answered with a non-2xx status.
	KindStatus
	// KindDecode means a 2xx response carried an unreadable body.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

const (
	// FallbackMessage is shown when nothing better can be extracted.
	FallbackMessage = "An unexpected error occurred"

	requestFailed = "Request failed"
)

// Error is the only error type returned by the gateway.
type Error struct {
	Kind    Kind
	Op      string // gateway operation, e.g. "employees.update"
	Message string // human-readable, shown to the user as is
	Status  int    // HTTP status, set for KindStatus
	Payload []byte // raw response body, set for KindStatus
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message extracts the text to show for err. Validation and auth errors are
// plain errors and keep their own message.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var gwErr *Error
	if errors.As(err, &gwErr) {
		if gwErr.Message != "" {
			return gwErr.Message
		}
		return FallbackMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}

// IsStatus reports whether err is a status error with the given HTTP code.
func IsStatus(err error, code int) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == KindStatus && gwErr.Status == code
}

func requestError(op string, err error) *Error {
	return &Error{Kind: KindRequest, Op: op, Message: messageOr(err, requestFailed), Err: err}
}

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Message: messageOr(err, requestFailed), Err: err}
}

func decodeError(op string, err error) *Error {
	return &Error{
		Kind:    KindDecode,
		Op:      op,
		Message: "Unexpected response from server",
		Err:     fmt.Errorf("failed to decode response: %w", err),
	}
}

// statusError builds an error from a non-2xx response. The message is the
// "message" field of a JSON body when there is one.
func statusError(op string, status int, payload []byte) *Error {
	msg := fmt.Sprintf("%s with status code %d", requestFailed, status)

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && strings.TrimSpace(body.Message) != "" {
		msg = body.Message
	}

	return &Error{Kind: KindStatus, Op: op, Message: msg, Status: status, Payload: payload}
}

func messageOr(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
