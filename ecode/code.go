package ecode

import (
	"net/http"
	"sync"
)

const (
	OK = 0

	RequestErr         = -400
	ParamErr           = -401
	AccessDenied       = -403
	NotFound           = -404
	MethodNotAllowed   = -405
	Conflict           = -409
	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504

	JobNotFound      = -1001
	JobsStillRunning = -1002
	ServiceClosed    = -1003
	JobInvalid       = -1004
)

var (
	mu    sync.RWMutex
	texts = map[int]string{
		OK:                 "ok",
		RequestErr:         "Invalid request",
		ParamErr:           "Invalid parameters",
		AccessDenied:       "Access denied",
		NotFound:           "Resource not found",
		MethodNotAllowed:   "Method not allowed",
		Conflict:           "Resource conflict",
		ServerErr:          "Internal server error",
		ServiceUnavailable: "Service unavailable",
		Deadline:           "Deadline exceeded",
		JobNotFound:        "Job not found",
		JobsStillRunning:   "Jobs are still running",
		ServiceClosed:      "Service is closed",
		JobInvalid:         "Job document is invalid",
	}
	statuses = map[int]int{
		OK:                 http.StatusOK,
		RequestErr:         http.StatusBadRequest,
		ParamErr:           http.StatusBadRequest,
		AccessDenied:       http.StatusForbidden,
		NotFound:           http.StatusNotFound,
		MethodNotAllowed:   http.StatusMethodNotAllowed,
		Conflict:           http.StatusConflict,
		ServerErr:          http.StatusInternalServerError,
		ServiceUnavailable: http.StatusServiceUnavailable,
		Deadline:           http.StatusGatewayTimeout,
		JobNotFound:        http.StatusNotFound,
		JobsStillRunning:   http.StatusConflict,
		ServiceClosed:      http.StatusServiceUnavailable,
		JobInvalid:         http.StatusUnprocessableEntity,
	}
)

// Text returns the message registered for code.
func Text(code int) string {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := texts[code]; ok {
		return t
	}
	return "Unknown error"
}

// Register adds or replaces the message for code.
func Register(code int, text string) {
	mu.Lock()
	defer mu.Unlock()
	texts[code] = text
}

// ToHTTPStatus maps code to an HTTP status, defaulting to 500.
func ToHTTPStatus(code int) int {
	mu.RLock()
	defer mu.RUnlock()
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
