package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNew_StructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: InfoLevel, Output: &buf, Component: "fetcher"})

	log.Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"fetcher"`) {
		t.Errorf("output missing component field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("output missing message: %s", out)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WarnLevel, Output: &buf})

	log.Debug("quiet")
	log.Info("also quiet")
	if buf.Len() != 0 {
		t.Errorf("messages below the level should be dropped, got %s", buf.String())
	}

	log.Warn("loud")
	if buf.Len() == 0 {
		t.Error("warn message should pass the filter")
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: InfoLevel, Output: &buf})

	log.WithURL("https://api.example.com/docs").Info("fetching")
	if !strings.Contains(buf.String(), `"url":"https://api.example.com/docs"`) {
		t.Errorf("output missing url field: %s", buf.String())
	}
}

func TestLogger_ProbeEvent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: InfoLevel, Output: &buf})

	log.ProbeEvent("GET", "https://api.example.com/users", 200, 1024, 15*time.Millisecond)

	out := buf.String()
	for _, want := range []string{`"method":"GET"`, `"code":200`, `"length":1024`} {
		if !strings.Contains(out, want) {
			t.Errorf("probe event missing %s: %s", want, out)
		}
	}
}

func TestNop(t *testing.T) {
	// Must not panic or write anywhere.
	Nop().WithComponent("x").Error("dropped")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	if err != nil || lvl != DebugLevel {
		t.Errorf("ParseLevel(debug) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("nonsense"); err == nil {
		t.Error("ParseLevel should reject unknown levels")
	}
}
