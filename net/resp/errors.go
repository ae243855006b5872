package resp

import (
	"net/http"

	"github.com/ncobase/longrun/ecode"
)

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// InvalidParams indicates request parameters failed validation.
func InvalidParams(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.ParamErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.NotFound, message, data...)
}

// JobNotFound indicates the job id is not known to the registry.
func JobNotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.JobNotFound, message, data...)
}

// Conflict indicates a conflict error.
func Conflict(message string, data ...any) *Exception {
	return newResponse(http.StatusConflict, ecode.Conflict, message, data...)
}

// JobsStillRunning indicates a close was refused because jobs are running.
func JobsStillRunning(message string, data ...any) *Exception {
	return newResponse(http.StatusConflict, ecode.JobsStillRunning, message, data...)
}

// UnprocessableJob indicates a stored job document could not be rehydrated.
func UnprocessableJob(message string, data ...any) *Exception {
	return newResponse(http.StatusUnprocessableEntity, ecode.JobInvalid, message, data...)
}

// ServiceClosed indicates the service no longer accepts runs.
func ServiceClosed(message string, data ...any) *Exception {
	return newResponse(http.StatusServiceUnavailable, ecode.ServiceClosed, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}
