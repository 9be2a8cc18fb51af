package api

import (
	"strings"
	"testing"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantMsg    string
		wantFields int
	}{
		{
			name:    "string detail",
			status:  500,
			body:    `{"detail":"model crashed"}`,
			wantMsg: "model crashed",
		},
		{
			name:     "structured detail",
			status:   400,
			body:     `{"detail":{"error":"ModelNotLoadedError","message":"Model 'supplier' is not loaded","error_code":"MODEL_NOT_LOADED","details":{"model_name":"supplier"}}}`,
			wantCode: "MODEL_NOT_LOADED",
			wantMsg:  "Model 'supplier' is not loaded",
		},
		{
			name:    "structured detail without message",
			status:  400,
			body:    `{"detail":{"error":"OptimizationError"}}`,
			wantMsg: "OptimizationError",
		},
		{
			name:       "validation list",
			status:     422,
			body:       `{"detail":[{"loc":["body","lead_time"],"msg":"ensure this value is greater than or equal to 1","type":"value_error.number.not_ge"},{"loc":["body","cost"],"msg":"field required","type":"value_error.missing"}]}`,
			wantMsg:    "request validation failed",
			wantFields: 2,
		},
		{
			name:    "flat message without envelope",
			status:  502,
			body:    `{"message":"upstream unavailable"}`,
			wantMsg: "upstream unavailable",
		},
		{
			name:    "plain text body",
			status:  503,
			body:    "Service Unavailable",
			wantMsg: "Service Unavailable",
		},
		{
			name:    "empty body",
			status:  500,
			body:    "",
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseError(tt.status, []byte(tt.body))
			if got.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", got.StatusCode, tt.status)
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
			if len(got.Fields) != tt.wantFields {
				t.Errorf("len(Fields) = %d, want %d", len(got.Fields), tt.wantFields)
			}
		})
	}
}

func TestParseErrorFieldNames(t *testing.T) {
	body := `{"detail":[{"loc":["body","customers",0,"lat"],"msg":"out of range","type":"value_error"}]}`
	got := ParseError(422, []byte(body))
	if len(got.Fields) != 1 {
		t.Fatalf("len(Fields) = %d, want 1", len(got.Fields))
	}
	if got.Fields[0].Field != "customers.0.lat" {
		t.Errorf("Field = %q, want %q", got.Fields[0].Field, "customers.0.lat")
	}
}

func TestAPIErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "message only",
			err:  &APIError{StatusCode: 500, Message: "model crashed"},
			want: "model crashed (status 500)",
		},
		{
			name: "with code",
			err:  &APIError{StatusCode: 400, Code: "MODEL_NOT_LOADED", Message: "Model 'x' is not loaded"},
			want: "MODEL_NOT_LOADED: Model 'x' is not loaded (status 400)",
		},
		{
			name: "empty message falls back to status text",
			err:  &APIError{StatusCode: 503},
			want: "Service Unavailable (status 503)",
		},
		{
			name: "fields appended",
			err: &APIError{
				StatusCode: 422,
				Message:    "request validation failed",
				Fields:     []FieldError{{Field: "lead_time", Message: "value too small"}},
			},
			want: "request validation failed; lead_time: value too small (status 422)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrorTruncatesLongBodies(t *testing.T) {
	body := strings.Repeat("x", 500)
	got := ParseError(500, []byte(body))
	if len(got.Message) > 210 {
		t.Errorf("Message length = %d, want truncated", len(got.Message))
	}
	if !strings.HasSuffix(got.Message, "...") {
		t.Errorf("Message = %q, want ... suffix", got.Message[len(got.Message)-10:])
	}
}
