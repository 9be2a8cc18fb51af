package ui

import (
	"strings"
	"testing"
)

func TestBar(t *testing.T) {
	tests := []struct {
		ratio  float64
		width  int
		filled int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{1, 10, 10},
		{-0.3, 10, 0},
		{1.7, 10, 10},
		{0.04, 10, 0},
		{0.06, 10, 1},
	}
	for _, tt := range tests {
		got := bar(tt.ratio, tt.width)
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("bar(%g, %d): %d filled cells, want %d", tt.ratio, tt.width, n, tt.filled)
		}
		if n := strings.Count(got, "░"); n != tt.width-tt.filled {
			t.Errorf("bar(%g, %d): %d empty cells, want %d", tt.ratio, tt.width, n, tt.width-tt.filled)
		}
	}
	if bar(0.5, 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestKV(t *testing.T) {
	line := kv("Confidence", "92.0%")
	if !strings.Contains(line, "Confidence") || !strings.Contains(line, "92.0%") {
		t.Errorf("kv line missing parts: %q", line)
	}
}
