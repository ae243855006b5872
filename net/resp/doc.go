// Package resp writes the JSON envelopes returned by the HTTP API.
//
// Success bodies are the payload itself. Failures are
//
//	{"code": -1001, "message": "Job not found", "errors": {...}}
//
// with the HTTP status taken from the Exception.
//
//	resp.Success(w, data)
//	resp.WithStatusCode(w, http.StatusAccepted, run)
//	resp.Fail(w, resp.NotFound("job not found"))
package resp
