package main

import (
	"strings"
	"testing"
)

func TestLoggerTagsAndLevelsEachLine(t *testing.T) {
	var buf strings.Builder
	l := NewLogger(&buf, "session")

	l.Infof("tick %d", 3)
	l.Warnf("low energy: %d", 1)
	l.Errorf("bad save: %v", "corrupt")

	out := buf.String()
	for _, want := range []string{"[session]", "[info]", "[warn]", "[error]", "tick 3", "low energy: 1", "bad save: corrupt"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewLoggerDefaultsToStderrOnNilWriter(t *testing.T) {
	l := NewLogger(nil, "x")
	if l.out == nil {
		t.Fatal("NewLogger(nil, ...) should fall back to a non-nil writer")
	}
}
