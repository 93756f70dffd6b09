package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every API endpoint answers with.
// Error carries the user-facing (localized) message; Message carries either the
// success copy or, for server errors, the underlying error text.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Write encodes resp with the given status
func Write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// OK sends a 200 OK response with data only
func OK(w http.ResponseWriter, data interface{}) {
	Write(w, http.StatusOK, Response{Success: true, Data: data})
}

// Message sends a 200 OK response with a message and optional data
func Message(w http.ResponseWriter, message string, data interface{}) {
	Write(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// List sends a 200 OK response carrying a count alongside the items
func List(w http.ResponseWriter, count int, data interface{}) {
	Write(w, http.StatusOK, Response{Success: true, Count: &count, Data: data})
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, Response{Success: false, Code: code, Error: message})
}

// ErrorWithCause sends an error response that also exposes the underlying error text
func ErrorWithCause(w http.ResponseWriter, status int, code, message string, cause error) {
	resp := Response{Success: false, Code: code, Error: message}
	if cause != nil {
		resp.Message = cause.Error()
	}
	Write(w, status, resp)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", MsgServerError)
}
