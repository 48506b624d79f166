package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", &buf)
	l.Debug("hidden")
	l.Info("shown", F("status", 200))

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "shown" {
		t.Fatalf("message = %v, want shown", line["message"])
	}
	if line["status"] != float64(200) {
		t.Fatalf("status = %v, want 200", line["status"])
	}
}

func TestDevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	New("development", &buf).Debug("visible")
	if buf.Len() == 0 {
		t.Fatal("debug line not written in development")
	}
}

func TestNop(t *testing.T) {
	Nop().Error("nothing", F("k", "v"))
}
