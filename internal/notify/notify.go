// Package notify sends department alerts for classified emergencies.
// Dispatch is a best-effort side channel: errors are returned for the
// caller to log as warnings and must never stop classification or logging.
package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberhq/calltriage/internal/model"
)

// Alert carries everything a department notification embeds.
type Alert struct {
	Category model.Category
	Priority string
	Message  string // translated emergency message
	Location string // resolved map link or "Unavailable"
}

// Dispatcher delivers an alert to the department responsible for the
// alert's category.
type Dispatcher interface {
	Dispatch(ctx context.Context, alert Alert) error
}

// Subject builds the fixed-pattern alert subject for a category.
func Subject(c model.Category) string {
	return fmt.Sprintf("High Priority Alert - %s Department", c)
}

// Body builds the alert body. ref is the alert reference the receiving
// department quotes back when following up.
func Body(alert Alert, ref string) string {
	return fmt.Sprintf(
		"Alert Reference: %s\nEmergency Message: %s\nPriority: %s\nSender Location: %s\nRouted To: %s\n",
		ref, alert.Message, alert.Priority, alert.Location, alert.Category.Department())
}

// newAlertRef mints the reference ID embedded in each alert.
func newAlertRef() string {
	return uuid.NewString()
}

// Nop is a Dispatcher that does nothing, used when no mail transport is
// configured.
type Nop struct{}

func (Nop) Dispatch(context.Context, Alert) error { return nil }
