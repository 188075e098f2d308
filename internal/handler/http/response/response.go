package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Response is the envelope every endpoint writes.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "status", status, "error", err)
	}
}

func Success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Unavailable reports a degraded dependency while still returning data.
func Unavailable(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusServiceUnavailable, Response{Message: message, Data: data})
}

// errorCode is the upper snake case status text, e.g. 404 -> NOT_FOUND.
func errorCode(status int) string {
	if status == http.StatusUnprocessableEntity {
		return "VALIDATION_ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// Fail writes an error envelope with the code derived from status.
func Fail(w http.ResponseWriter, status int, message string, details map[string]string) {
	writeJSON(w, status, Response{
		Error: &ErrorDetail{Code: errorCode(status), Message: message, Details: details},
	})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Fail(w, http.StatusBadRequest, message, details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	Fail(w, http.StatusUnprocessableEntity, "Validation failed", details)
}

func Forbidden(w http.ResponseWriter, message string) {
	Fail(w, http.StatusForbidden, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message, nil)
}
