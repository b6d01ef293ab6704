package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Console writes alerts as JSON lines. It is the default dispatch target
// when no mail transport is configured, so alerts remain visible in the
// service output during development.
type Console struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewConsole creates a Console writing to w, with optional pretty-printed
// JSON.
func NewConsole(w io.Writer, pretty bool) *Console {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Console{enc: enc}
}

type consoleAlert struct {
	Ref        string `json:"ref"`
	Subject    string `json:"subject"`
	Priority   string `json:"priority"`
	Message    string `json:"message"`
	Location   string `json:"location"`
	Department string `json:"department"`
}

func (c *Console) Dispatch(_ context.Context, alert Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := consoleAlert{
		Ref:        newAlertRef(),
		Subject:    Subject(alert.Category),
		Priority:   alert.Priority,
		Message:    alert.Message,
		Location:   alert.Location,
		Department: alert.Category.Department(),
	}
	if err := c.enc.Encode(rec); err != nil {
		return fmt.Errorf("console dispatch: %w", err)
	}
	return nil
}
