// ABOUTME: Tests for shared CLI utility functions
// ABOUTME: Covers truncation, time formatting, and flag validation

package commands

import (
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"unicode aware", "こんにちは世界", 5, "こん..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-2 * 24 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTime(tt.t)
			if got != tt.want {
				t.Errorf("formatTime() = %q, want %q", got, tt.want)
			}
		})
	}

	// Old dates fall back to the date itself
	old := now.Add(-30 * 24 * time.Hour)
	got := formatTime(old)
	if !strings.Contains(got, "-") {
		t.Errorf("formatTime for old date should be a date, got %q", got)
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "limit"); err != nil {
		t.Errorf("positive value should pass, got %v", err)
	}
	if err := validatePositiveInt(0, "limit"); err == nil {
		t.Error("zero should fail validation")
	}
	if err := validatePositiveInt(-1, "limit"); err == nil {
		t.Error("negative should fail validation")
	}
}
