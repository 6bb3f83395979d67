package apiclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is the normalized failure every client method returns for a non-2xx
// response. Transport and decode failures are wrapped causes, not Errors.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Op, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func newError(op string, resp *http.Response) *Error {
	// best effort: the server sometimes sends a plain-text detail
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return &Error{Op: op, Status: resp.StatusCode, Message: msg}
}

// StatusOf extracts the HTTP status of a normalized error, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
