package calltriage

import (
	"time"

	"github.com/emberhq/calltriage/internal/engine"
)

// Event is one finalized classification record.
type Event struct {
	Timestamp         time.Time
	OriginalMessage   string
	TranslatedMessage string // holds a translation-failure marker when translation failed
	Priority          string
	Confidence        float64 // percentage in [0,100]
	Category          string
}

// Result is one completed classification: the event plus routing and the
// full class-probability distribution.
type Result struct {
	Event        Event
	Department   string
	Distribution map[string]float64
	Warnings     []string
}

// resultFromInternal converts the internal engine result to the public type.
func resultFromInternal(r engine.Result) Result {
	return Result{
		Event: Event{
			Timestamp:         r.Event.Timestamp,
			OriginalMessage:   r.Event.OriginalMessage,
			TranslatedMessage: r.Event.TranslatedMessage,
			Priority:          r.Event.Priority,
			Confidence:        r.Event.Confidence,
			Category:          string(r.Event.Category),
		},
		Department:   r.Department,
		Distribution: r.Distribution,
		Warnings:     r.Warnings,
	}
}
