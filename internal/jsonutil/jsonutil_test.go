package jsonutil

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestUnmarshalWithContext(t *testing.T) {
	type TestStruct struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "valid JSON",
			data:    []byte(`{"name":"test"}`),
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			data:    []byte(`not json`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v TestStruct
			err := UnmarshalWithContext(tt.data, &v, "test context")
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalWithContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && v.Name != "test" {
				t.Errorf("UnmarshalWithContext() v.Name = %q, want %q", v.Name, "test")
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"object", []byte(`{"a":1}`), false},
		{"null", []byte(`null`), false},
		{"array", []byte(`[1,2]`), true},
		{"invalid", []byte(`{`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeObject(tt.data, "test context")
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeObject() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got == nil {
				t.Error("DecodeObject() returned nil map without error")
			}
		})
	}
}

func TestGetString(t *testing.T) {
	m := map[string]any{
		"str":     "value",
		"num":     42.0,
		"bool":    true,
		"nil":     nil,
		"missing": nil,
	}

	tests := []struct {
		key  string
		want string
	}{
		{"str", "value"},
		{"num", ""},
		{"bool", ""},
		{"nil", ""},
		{"missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetString(m, tt.key); got != tt.want {
				t.Errorf("GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetStringOr(t *testing.T) {
	m := map[string]any{
		"str": "value",
		"num": 42.0,
	}

	tests := []struct {
		key          string
		defaultValue string
		want         string
	}{
		{"str", "default", "value"},
		{"num", "default", "default"},
		{"missing", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetStringOr(m, tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("GetStringOr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetFloat(t *testing.T) {
	m := map[string]any{
		"float":  3.5,
		"whole":  42.0,
		"int":    7,
		"number": json.Number("2.25"),
		"strnum": "1.5",
		"str":    "abc",
		"bool":   true,
		"nil":    nil,
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"float", 3.5},
		{"whole", 42},
		{"int", 7},
		{"number", 2.25},
		{"strnum", 1.5},
		{"str", 0},
		{"bool", 0},
		{"nil", 0},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetFloat(m, tt.key); got != tt.want {
				t.Errorf("GetFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetFloatOr(t *testing.T) {
	m := map[string]any{
		"present": 0.95,
		"str":     "abc",
	}

	tests := []struct {
		key  string
		def  float64
		want float64
	}{
		{"present", 0.5, 0.95},
		{"str", 0.5, 0.5},
		{"missing", 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetFloatOr(m, tt.key, tt.def); got != tt.want {
				t.Errorf("GetFloatOr() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetFloatFirst(t *testing.T) {
	m := map[string]any{
		"delayed":           1.0,
		"probability":       "bad",
		"delay_probability": 0.72,
	}

	tests := []struct {
		name   string
		keys   []string
		want   float64
		wantOk bool
	}{
		{"first key wins", []string{"delayed", "delay_probability"}, 1, true},
		{"falls through missing", []string{"will_delay", "delayed"}, 1, true},
		{"skips non-numeric", []string{"probability", "delay_probability"}, 0.72, true},
		{"nothing matches", []string{"a", "b"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetFloatFirst(m, tt.keys...)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("GetFloatFirst() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	m := map[string]any{
		"whole":    5.0,
		"fraction": 5.9,
		"str":      "x",
	}

	tests := []struct {
		key  string
		want int
	}{
		{"whole", 5},
		{"fraction", 5},
		{"str", 0},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetInt(m, tt.key); got != tt.want {
				t.Errorf("GetInt() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := GetIntOr(m, "missing", 3); got != 3 {
		t.Errorf("GetIntOr() = %d, want 3", got)
	}
}

func TestGetBool(t *testing.T) {
	m := map[string]any{
		"true":  true,
		"false": false,
		"one":   1.0,
		"zero":  0.0,
		"str":   "yes",
	}

	tests := []struct {
		key  string
		want bool
	}{
		{"true", true},
		{"false", false},
		{"one", true},
		{"zero", false},
		{"str", false},
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetBool(m, tt.key); got != tt.want {
				t.Errorf("GetBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetMap(t *testing.T) {
	m := map[string]any{
		"obj":   map[string]any{"inner": "v"},
		"array": []any{1.0},
		"str":   "x",
	}

	if got := GetString(GetMap(m, "obj"), "inner"); got != "v" {
		t.Errorf("GetMap().inner = %q, want %q", got, "v")
	}
	for _, key := range []string{"array", "str", "missing"} {
		got := GetMap(m, key)
		if got == nil {
			t.Errorf("GetMap(%q) = nil, want empty map", key)
		}
		if len(got) != 0 {
			t.Errorf("GetMap(%q) len = %d, want 0", key, len(got))
		}
	}
}

func TestGetMaps(t *testing.T) {
	m := map[string]any{
		"rows": []any{
			map[string]any{"id": 1.0},
			"junk",
			map[string]any{"id": 2.0},
		},
		"str": "x",
	}

	rows := GetMaps(m, "rows")
	if len(rows) != 2 {
		t.Fatalf("GetMaps() len = %d, want 2", len(rows))
	}
	if GetInt(rows[1], "id") != 2 {
		t.Errorf("GetMaps()[1].id = %d, want 2", GetInt(rows[1], "id"))
	}
	if got := GetMaps(m, "str"); got != nil {
		t.Errorf("GetMaps(non-array) = %v, want nil", got)
	}
}

func TestGetFloats(t *testing.T) {
	m := map[string]any{
		"forecast": []any{100.5, 101.0, "junk", 99.25},
		"str":      "x",
	}

	want := []float64{100.5, 101, 99.25}
	if got := GetFloats(m, "forecast"); !reflect.DeepEqual(got, want) {
		t.Errorf("GetFloats() = %v, want %v", got, want)
	}
	if got := GetFloats(m, "missing"); got != nil {
		t.Errorf("GetFloats(missing) = %v, want nil", got)
	}
}

func TestGetStrings(t *testing.T) {
	m := map[string]any{
		"models": []any{"supplier", "shipment", 3.0, nil},
	}

	want := []string{"supplier", "shipment", "3"}
	if got := GetStrings(m, "models"); !reflect.DeepEqual(got, want) {
		t.Errorf("GetStrings() = %v, want %v", got, want)
	}
}

func TestHas(t *testing.T) {
	m := map[string]any{
		"present": 0.0,
		"nil":     nil,
	}

	tests := []struct {
		key  string
		want bool
	}{
		{"present", true},
		{"nil", false},
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Has(m, tt.key); got != tt.want {
				t.Errorf("Has() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{"string", "hello", "hello"},
		{"float64 whole", 42.0, "42"},
		{"float64 decimal", 3.14, "3.14"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"nil", nil, ""},
		{"int", 123, "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToString(tt.v); got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToFloatNaN(t *testing.T) {
	// NaN passes through rather than being silently dropped.
	f, ok := toFloat(math.NaN())
	if !ok || !math.IsNaN(f) {
		t.Errorf("toFloat(NaN) = (%v, %v), want (NaN, true)", f, ok)
	}
}
