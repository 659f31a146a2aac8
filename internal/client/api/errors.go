package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/panelkeeper/internal/common"
)

// FallbackErrorMessage is used when the server's error envelope carries no
// message (or cannot be decoded at all).
const FallbackErrorMessage = "Something went wrong"

// StatusError is a non-2xx API response. Error() is the server-provided
// message verbatim so it can be shown to the user unchanged; Unwrap maps
// well-known status codes onto shared sentinels for errors.Is matching.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return FallbackErrorMessage
	}
	return e.Message
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	}
	if e.StatusCode >= http.StatusInternalServerError {
		return common.ErrorInternal
	}
	return nil
}

func newStatusError(code int, message string) error {
	if message == "" {
		message = FallbackErrorMessage
	}
	return &StatusError{StatusCode: code, Message: message}
}

// wrapTransportErr keeps transport failures distinguishable from API
// rejections.
func wrapTransportErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
