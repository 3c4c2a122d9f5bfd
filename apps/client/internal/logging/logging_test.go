package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	cases := []struct {
		level, format string
		debug         bool
	}{
		{"info", "console", false},
		{"debug", "json", true},
		{"", "", false},
		{"warn", "JSON", false},
	}
	for _, tc := range cases {
		logger, err := New(tc.level, tc.format)
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tc.level, tc.format, err)
		}
		if got := logger.Core().Enabled(zap.DebugLevel); got != tc.debug {
			t.Fatalf("New(%q, %q) debug enabled = %v", tc.level, tc.format, got)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New("loud", "console"); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Fatalf("expected format error")
	}
}
