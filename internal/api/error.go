package api

import (
	"fmt"
	"net/http"
	"strings"

	"chainboard/internal/jsonutil"
)

// FieldError is one field violation from a request validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a backend failure normalized from the error envelope the
// server wraps around non-2xx responses. The envelope's detail is a plain
// string, a structured object with an error code, or a list of field
// violations; all three collapse into one renderable error.
type APIError struct {
	StatusCode int            `json:"status_code"`
	Code       string         `json:"error_code,omitempty"`
	Message    string         `json:"message"`
	Fields     []FieldError   `json:"fields,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	var b strings.Builder
	if e.Code != "" {
		fmt.Fprintf(&b, "%s: ", e.Code)
	}
	b.WriteString(msg)
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "; %s: %s", f.Field, f.Message)
	}
	fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	return b.String()
}

// ParseError builds an APIError from a non-2xx response body. It never
// fails: unrecognized bodies become the error message verbatim.
func ParseError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	m, err := jsonutil.DecodeObject(body, "error response")
	if err != nil {
		apiErr.Message = truncate(strings.TrimSpace(string(body)), 200)
		return apiErr
	}

	detail, ok := m["detail"]
	if !ok {
		// Some proxies strip the envelope and emit message/error directly.
		apiErr.Message = jsonutil.GetStringOr(m, "message", jsonutil.GetString(m, "error"))
		return apiErr
	}

	switch d := detail.(type) {
	case string:
		apiErr.Message = d
	case map[string]any:
		apiErr.Message = jsonutil.GetStringOr(d, "message", jsonutil.GetString(d, "error"))
		apiErr.Code = jsonutil.GetString(d, "error_code")
		if details := jsonutil.GetMap(d, "details"); len(details) > 0 {
			apiErr.Details = details
		}
	case []any:
		// FastAPI-style 422 list: [{loc: [body, field], msg, type}].
		for _, el := range d {
			obj, ok := el.(map[string]any)
			if !ok {
				continue
			}
			apiErr.Fields = append(apiErr.Fields, FieldError{
				Field:   fieldFromLoc(obj["loc"]),
				Message: jsonutil.GetString(obj, "msg"),
			})
		}
		apiErr.Message = "request validation failed"
	}
	return apiErr
}

// fieldFromLoc flattens a validation location path like ["body",
// "customers", 0, "lat"] into "customers.0.lat".
func fieldFromLoc(loc any) string {
	arr, ok := loc.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(arr))
	for _, el := range arr {
		s := jsonutil.ToString(el)
		if s == "" || (len(parts) == 0 && (s == "body" || s == "query")) {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ".")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
