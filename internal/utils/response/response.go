// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/student-registration/internal/form"
)

// Response is the standard envelope returned for error cases.
//
// Error responses always look like:
//
//	{ "status": "error", "error": "validation failed: First name is required" }
//
// Validation failures add the per-field errors so a client can show each
// message next to its input:
//
//	{ "status": "error", "error": "...",
//	  "fields": { "firstName": { "code": "required", "message": "First name is required" } } }
type Response struct {
	Status string           `json:"status"` // "ok" or "error"
	Error  string           `json:"error"`  // human-readable error detail
	Fields form.FieldErrors `json:"fields,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts a form validation failure into a Response
// carrying one entry per failing field.
func ValidationError(err *form.ValidationError) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
		Fields: err.Fields,
	}
}
