package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/emberhq/calltriage/internal/model"
)

func TestConsoleDispatch(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	err := c.Dispatch(context.Background(), Alert{
		Category: model.Fire,
		Priority: "High",
		Message:  "there is a fire in my building",
		Location: "https://www.google.com/maps?q=13.0827,80.2707",
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}

	var rec consoleAlert
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if rec.Subject != "High Priority Alert - Fire Department" {
		t.Errorf("subject = %q", rec.Subject)
	}
	if rec.Department != "Fire Department" {
		t.Errorf("department = %q", rec.Department)
	}
	if rec.Ref == "" {
		t.Error("alert ref must not be empty")
	}
}

func TestConsoleDispatchOneLinePerAlert(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	for i := 0; i < 3; i++ {
		if err := c.Dispatch(context.Background(), Alert{Category: model.Medical, Priority: "Low"}); err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Errorf("got %d lines, want 3", len(lines))
	}
}
