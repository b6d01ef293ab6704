// Package engine orchestrates the translate → normalize → classify →
// dispatch → log pipeline for a single emergency message.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emberhq/calltriage/internal/engine/keyword"
	"github.com/emberhq/calltriage/internal/engine/normalize"
	"github.com/emberhq/calltriage/internal/engine/priority"
	"github.com/emberhq/calltriage/internal/location"
	"github.com/emberhq/calltriage/internal/model"
	"github.com/emberhq/calltriage/internal/notify"
	"github.com/emberhq/calltriage/internal/translate"
)

// ErrEmptyMessage rejects blank input before any external collaborator is
// called.
var ErrEmptyMessage = errors.New("engine: message is empty")

// Store is the slice of the log store the engine needs.
type Store interface {
	Append(model.Event) error
}

// Result is one completed triage: the persisted event plus display data.
type Result struct {
	Event        model.Event        `json:"event"`
	Department   string             `json:"department"`
	Distribution map[string]float64 `json:"distribution"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// Engine wires the collaborators behind one triage call. All collaborators
// are injected so tests can run against fakes.
type Engine struct {
	translator translate.Translator
	predictor  priority.Predictor
	dispatcher notify.Dispatcher
	store      Store
	now        func() time.Time
}

// New creates an Engine.
func New(tr translate.Translator, pred priority.Predictor, disp notify.Dispatcher, store Store) *Engine {
	return &Engine{
		translator: tr,
		predictor:  pred,
		dispatcher: disp,
		store:      store,
		now:        time.Now,
	}
}

// Triage runs one message through the full pipeline. The returned Result
// carries non-fatal collaborator failures as warnings; only empty input and
// classifier errors fail the call. The event is always appended once
// classification succeeds, regardless of dispatch outcome.
func (e *Engine) Triage(ctx context.Context, message, coords string) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{}, ErrEmptyMessage
	}

	var warnings []string

	translated, err := e.translator.Translate(ctx, message)
	if err != nil {
		// Degraded: the marker becomes the effective translated text and
		// classification proceeds on it.
		translated = translate.FailureMarker(err)
		warnings = append(warnings, "translation failed; classification ran on the failure marker")
		slog.Warn("translation failed", "error", err)
	}

	cleaned := normalize.Normalize(translated)

	pred, err := e.predictor.Predict(cleaned)
	if err != nil {
		return Result{}, fmt.Errorf("engine: priority prediction: %w", err)
	}
	category := keyword.Classify(cleaned)

	event := model.Event{
		Timestamp:         e.now(),
		OriginalMessage:   message,
		TranslatedMessage: translated,
		Priority:          pred.Label,
		Confidence:        pred.Confidence,
		Category:          category,
	}

	alert := notify.Alert{
		Category: category,
		Priority: pred.Label,
		Message:  translated,
		Location: location.Resolve(coords),
	}
	if err := e.dispatcher.Dispatch(ctx, alert); err != nil {
		warnings = append(warnings, fmt.Sprintf("alert dispatch failed: %v", err))
		slog.Warn("alert dispatch failed", "category", category, "error", err)
	}

	// The log is the system of record — append even when dispatch failed.
	if err := e.store.Append(event); err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to record event: %v", err))
		slog.Error("event append failed", "error", err)
	}

	return Result{
		Event:        event,
		Department:   category.Department(),
		Distribution: pred.Distribution,
		Warnings:     warnings,
	}, nil
}
