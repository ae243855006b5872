// Package ecode defines the business codes carried in API error responses.
//
// Codes follow the usual convention:
//   - 0: success
//   - -400 .. -499: request errors
//   - -500+: server errors
//   - -1000 .. -1099: job lifecycle errors
//
// Use Text to get the message for a code and ToHTTPStatus to map it to an
// HTTP status. Register adds application-specific codes:
//
//	ecode.Register(-1050, "Quota exceeded")
package ecode
