package model

import "time"

// Event is one finalized classification record. Events are immutable once
// built and are appended exactly once to the log store.
type Event struct {
	Timestamp         time.Time `json:"timestamp"`
	OriginalMessage   string    `json:"original_message"`
	TranslatedMessage string    `json:"translated_message"` // may hold a translation-failure marker, never empty for a persisted event
	Priority          string    `json:"priority"`
	Confidence        float64   `json:"confidence"` // percentage in [0,100], max class probability
	Category          Category  `json:"category"`
}
