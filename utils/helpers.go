package utils

import (
	"encoding/json"
	"net/http"

	"github.com/awantoch/flowsketch/constants"
)

// ErrorResponse is the body of every JSON error the HTTP surface returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteHTTPJSON writes v as a JSON response with the given status code.
func WriteHTTPJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		Error(constants.LogJSONEncodeFailed, err)
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		Error(constants.LogJSONEncodeFailed, err)
	}
}

// WriteHTTPError writes a one-line JSON error body: {"error": message}.
func WriteHTTPError(w http.ResponseWriter, code int, message string) {
	WriteHTTPJSON(w, code, ErrorResponse{Error: message})
}

// SafeStringAssert safely asserts a value to string
func SafeStringAssert(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// SafeMapAssert safely asserts a value to map[string]any
func SafeMapAssert(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// SafeSliceAssert safely asserts a value to []any
func SafeSliceAssert(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}
