package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape used by every handler.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes a JSON envelope with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, success bool, message, errCode string, data, errors any) {
	response := Envelope{
		Success: success,
		Message: message,
		Data:    data,
		Error:   errCode,
		Errors:  errors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, "", data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, "", data, nil)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, false, message, "INVALID_REQUEST_DATA", nil, errors)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnauthorized, false, message, "UNAUTHORIZED", nil, nil)
}

// ResponseError maps a known error code and status to the envelope.
func ResponseError(w http.ResponseWriter, code int, errCode, message string) {
	ResponseJSON(w, code, false, message, errCode, nil, nil)
}
