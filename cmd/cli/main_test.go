package main

import (
	"path/filepath"
	"testing"
)

func TestDerivedOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"indicators.xlsx", "indicators.db"},
		{filepath.Join("data", "q3.xlsx"), filepath.Join("data", "q3.db")},
		{filepath.Join("data", "noext"), filepath.Join("data", "noext.db")},
	}

	for _, tt := range tests {
		if got := derivedOutputPath(tt.input); got != tt.expected {
			t.Errorf("derivedOutputPath(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
