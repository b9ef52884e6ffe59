package download

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))
	p.Publish(Event{Name: EventComplete, Model: "llama3:8b", ID: "id-1", Fields: map[string]any{"dur": "1s"}})
	p.Publish(Event{Name: EventError, Model: "llama3:8b", ID: "id-2"})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%q", lines)
	}
	if !strings.Contains(lines[0], `"event":"download_complete"`) || !strings.Contains(lines[0], `"dur":"1s"`) || !strings.Contains(lines[0], `"level":"info"`) {
		t.Fatalf("line0=%s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"id":"id-2"`) {
		t.Fatalf("line1=%s", lines[1])
	}
}
