package chat

import (
	"fmt"
	"net/http"
)

// timeoutError signals that the backend did not answer in time (408).
type timeoutError struct{ model string }

func (e timeoutError) Error() string { return "timeout - model " + e.model + " is too slow" }

func (timeoutError) StatusCode() int { return http.StatusRequestTimeout }

// IsTimeout reports whether err is a relay timeout.
func IsTimeout(err error) bool {
	_, ok := err.(timeoutError)
	return ok
}

// backendDownError signals that the backend refused or dropped the connection (503).
type backendDownError struct{ cause error }

func (e backendDownError) Error() string { return "Ollama is not running" }

func (e backendDownError) Unwrap() error { return e.cause }

func (backendDownError) StatusCode() int { return http.StatusServiceUnavailable }

func IsBackendDown(err error) bool {
	_, ok := err.(backendDownError)
	return ok
}

// upstreamError carries a non-200 answer or an unreadable reply (500).
type upstreamError struct {
	status int
	msg    string
}

func (e upstreamError) Error() string { return e.msg }

func (upstreamError) StatusCode() int { return http.StatusInternalServerError }

// UpstreamStatus returns the backend HTTP status, 0 when the body was unreadable.
func (e upstreamError) UpstreamStatus() int { return e.status }

func IsUpstream(err error) bool {
	_, ok := err.(upstreamError)
	return ok
}

func newUpstreamError(status int, backendMsg string) error {
	if backendMsg == "" {
		backendMsg = fmt.Sprintf("Ollama error: %d", status)
	}
	return upstreamError{status: status, msg: backendMsg}
}
