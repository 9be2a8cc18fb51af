package format

import (
	"testing"
	"time"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{49.99, "$49.99"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-75.5, "-$75.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Money(tt.in); got != tt.want {
				t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0%"},
		{0.923, "92.3%"},
		{1, "100.0%"},
		{0.225, "22.5%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(25.44); got != "25.4 km" {
		t.Errorf("Distance() = %q, want %q", got, "25.4 km")
	}
	if got := Distance(0); got != "0.0 km" {
		t.Errorf("Distance() = %q, want %q", got, "0.0 km")
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{245, "245"},
		{245.25, "245.3"},
		{1200, "1,200"},
		{12500.04, "12,500"},
		{-1200.5, "-1,200.5"},
		{0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Quantity(tt.in); got != tt.want {
				t.Errorf("Quantity(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	if got := Count(1234567); got != "1,234,567" {
		t.Errorf("Count() = %q, want %q", got, "1,234,567")
	}
}

func TestLatency(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{42 * time.Millisecond, "42ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1.0s"},
		{2500 * time.Millisecond, "2.5s"},
	}

	for _, tt := range tests {
		if got := Latency(tt.in); got != tt.want {
			t.Errorf("Latency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCoord(t *testing.T) {
	if got := Coord(40.7305, -74.1724); got != "40.73, -74.17" {
		t.Errorf("Coord() = %q, want %q", got, "40.73, -74.17")
	}
}
