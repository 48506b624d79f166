package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminal(&buf, DefaultPalette)
	n.Notify(Notice{Level: Error, Message: "Server error. Please try again later."})

	out := buf.String()
	if !strings.Contains(out, "Server error. Please try again later.") {
		t.Fatalf("output %q missing message", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("output %q not newline terminated", out)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(Notice{Level: Success, Message: "a"})
	r.Notify(Notice{Level: Info, Message: "b"})

	got := r.Notices()
	if len(got) != 2 || got[0].Message != "a" || got[1].Level != Info {
		t.Fatalf("Notices = %+v", got)
	}
	got[0].Message = "mutated"
	if r.Notices()[0].Message != "a" {
		t.Fatal("Notices returned shared slice")
	}

	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("Len after Reset = %d", r.Len())
	}
}

func TestLevelString(t *testing.T) {
	if Warning.String() != "warning" || Level(42).String() != "info" {
		t.Fatalf("unexpected level names %q %q", Warning, Level(42))
	}
}
