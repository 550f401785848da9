// Package apperror defines the typed error every remote call and cached
// query resolves to. A view can always render a notification from
// Describe(err) without knowing where the error came from.
package apperror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure by where it came from.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server_error"
	KindMalformed    Kind = "malformed"
)

const (
	networkMessage = "Network error occurred"
	genericMessage = "An error occurred"
)

// Error is the typed error returned by the blog client and propagated
// unchanged through the cache and the orchestrator.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Code is the short error name from the response body, e.g. "Bad Request".
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind so errors.Is(err, apperror.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == KindServer && e.Kind == KindMalformed {
		return true
	}
	return t.Kind == e.Kind && t.Status == 0 && t.Message == ""
}

// Sentinels for errors.Is checks.
var (
	ErrNetwork      = &Error{Kind: KindNetwork}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrServer       = &Error{Kind: KindServer}
	ErrMalformed    = &Error{Kind: KindMalformed}
)

// KindForStatus maps a non-2xx HTTP status to an error kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// errorBody is the error payload the API sends on non-2xx responses.
// message is a string or, for validation failures, a list of strings.
type errorBody struct {
	Message    json.RawMessage `json:"message"`
	StatusCode int             `json:"statusCode"`
	Error      string          `json:"error"`
}

// FromResponse builds the typed error for a non-2xx response.
func FromResponse(status int, body []byte) *Error {
	e := &Error{Kind: KindForStatus(status), Status: status}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		e.Code = parsed.Error
		e.Message = decodeMessage(parsed.Message)
		if e.Message == "" {
			e.Message = parsed.Error
		}
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("%s (HTTP %d)", genericMessage, status)
	}
	return e
}

func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

// Network wraps a transport failure.
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Message: networkMessage, Err: err}
}

// Malformed reports a response body that does not match the expected schema.
func Malformed(status int, err error) *Error {
	return &Error{
		Kind:    KindMalformed,
		Status:  status,
		Message: "Unexpected response from server",
		Err:     err,
	}
}

// Validation reports a request rejected before it was sent.
func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// Is reports whether err carries the given kind. KindServer also matches
// malformed responses.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if kind == KindServer && e.Kind == KindMalformed {
		return true
	}
	return e.Kind == kind
}

// Describe returns the kind and message a view needs to show a notification.
// Malformed responses are shown as server errors. Errors that are not *Error
// are reported as network errors when they come from a cancelled context and
// as server errors otherwise.
func Describe(err error) (Kind, string) {
	if err == nil {
		return "", ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindMalformed {
			return KindServer, e.Message
		}
		return e.Kind, e.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork, networkMessage
	}
	return KindServer, genericMessage
}

// Retryable reports whether a failed read is worth retrying. Malformed
// responses retry like any other server error.
func Retryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if errors.Is(e.Err, context.Canceled) {
		return false
	}
	return Is(e, KindServer) || e.Kind == KindNetwork
}
