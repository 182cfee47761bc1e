package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrSessionExpired is wrapped by errors for authenticated calls the backend
// rejected with 401 or 403. The session has already been cleared when it is
// returned; callers should send the user back to the login route.
var ErrSessionExpired = errors.New("session expired, please log in again")

// Kind classifies a failed call.
type Kind string

// Error kinds.
const (
	KindTransport    Kind = "transport"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server"
	KindDecode       Kind = "decode"
)

// maxMessageLen caps how much of a plain-text body is used as a message.
const maxMessageLen = 300

// Error is a failed backend call.
type Error struct {
	Kind    Kind
	Status  int
	Method  string
	Path    string
	Message string // backend message, verbatim; empty when none was sent
	Cause   error
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", e.Method, e.Path)
	if e.Status != 0 {
		fmt.Fprintf(&sb, ": HTTP %d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&sb, ": %s", e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == k
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// UserMessage turns err into text fit for display: the backend's own message
// when it sent one, the session-expired notice, or fallback. Transport details
// and decode internals are never shown.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrSessionExpired) {
		return "Your session has expired. Please log in again."
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		switch apiErr.Kind {
		case KindTransport, KindDecode:
		default:
			return apiErr.Message
		}
	}
	return fallback
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// extractMessage pulls a human-readable message out of an error body: a JSON
// "message" or "error" field, a JSON string, or short plain text.
func extractMessage(body []byte, contentType string) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	switch body[0] {
	case '{':
		var obj map[string]any
		if json.Unmarshal(body, &obj) == nil {
			for _, key := range []string{"message", "error"} {
				if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
			return ""
		}
	case '"':
		var s string
		if json.Unmarshal(body, &s) == nil {
			return strings.TrimSpace(s)
		}
	}

	if strings.Contains(contentType, "html") || body[0] == '<' {
		return ""
	}
	if !utf8.Valid(body) || len(body) > maxMessageLen {
		return ""
	}
	return string(body)
}
