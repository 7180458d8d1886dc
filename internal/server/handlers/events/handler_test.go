package events

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mgit-app/mgit/internal/events"
)

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	err := writeEvent(w, events.Event{
		ID:        7,
		Type:      events.TypeNotification,
		Timestamp: time.Unix(0, 0).UTC(),
		Data:      map[string]string{"title": "Push finished"},
	})
	if err != nil {
		t.Fatalf("Failed to write event: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "id: 7\nevent: notification\ndata: {") {
		t.Errorf("Unexpected frame header: %q", out)
	}
	if !strings.HasSuffix(out, "}\n\n") {
		t.Errorf("Frame must end with a blank line: %q", out)
	}
	if !strings.Contains(out, `"title":"Push finished"`) {
		t.Errorf("Frame is missing data: %q", out)
	}
}

func TestWriteEvent_InitialStateHasNoID(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	if err := writeEvent(w, events.Event{Type: events.TypeState}); err != nil {
		t.Fatalf("Failed to write event: %v", err)
	}

	if strings.Contains(buf.String(), "id:") {
		t.Errorf("Initial state must not carry an id: %q", buf.String())
	}
}

func TestWriteComment(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	if err := writeComment(w, "ping"); err != nil {
		t.Fatalf("Failed to write comment: %v", err)
	}

	if buf.String() != ": ping\n\n" {
		t.Errorf("Unexpected comment frame: %q", buf.String())
	}
}
