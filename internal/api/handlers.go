package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/emberhq/calltriage/internal/engine"
	"github.com/emberhq/calltriage/internal/logstore"
	"github.com/emberhq/calltriage/internal/model"
)

// TriageProvider runs one message through the classification pipeline.
type TriageProvider interface {
	Triage(ctx context.Context, message, coords string) (engine.Result, error)
}

// EventQuerier reads the event log.
type EventQuerier interface {
	Query(filter logstore.Filter) ([]model.Event, error)
}

// Listener captures one phrase from the microphone and transcribes it.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// TriageHandler serves classification requests.
type TriageHandler struct {
	triage TriageProvider
}

// NewTriageHandler creates a TriageHandler.
func NewTriageHandler(t TriageProvider) *TriageHandler {
	return &TriageHandler{triage: t}
}

type triageRequest struct {
	Message     string `json:"message"`
	Coordinates string `json:"coordinates"`
}

// Classify handles POST /api/v1/triage.
func (h *TriageHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req triageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.triage.Triage(r.Context(), req.Message, req.Coordinates)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyMessage) {
			http.Error(w, "please enter or speak an emergency message first", http.StatusBadRequest)
			return
		}
		slog.Error("triage failed", "error", err)
		http.Error(w, "classification failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// EventHandler serves the emergency log view.
type EventHandler struct {
	events EventQuerier
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(e EventQuerier) *EventHandler {
	return &EventHandler{events: e}
}

type eventsResponse struct {
	Events  []model.Event `json:"events"`
	Warning string        `json:"warning,omitempty"`
}

// List handles GET /api/v1/events. An unreadable log degrades to an empty
// table with a warning, never an error status.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := logstore.Filter{
		Priority: r.URL.Query().Get("priority"),
		Category: r.URL.Query().Get("category"),
	}

	events, err := h.events.Query(filter)
	resp := eventsResponse{Events: events}
	if resp.Events == nil {
		resp.Events = []model.Event{}
	}
	if err != nil {
		slog.Warn("event log query failed", "error", err)
		resp.Warning = "failed to load emergency log"
	}

	writeJSON(w, http.StatusOK, resp)
}

// CaptureHandler serves voice input requests.
type CaptureHandler struct {
	listener Listener
}

// NewCaptureHandler creates a CaptureHandler. listener may be nil when
// capture is not configured.
func NewCaptureHandler(l Listener) *CaptureHandler {
	return &CaptureHandler{listener: l}
}

type transcribeResponse struct {
	Text    string `json:"text"`
	Warning string `json:"warning,omitempty"`
}

// Transcribe handles POST /api/v1/transcribe. Capture and recognition
// failures degrade to an empty transcript plus a warning so the UI can
// re-prompt.
func (h *CaptureHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if h.listener == nil {
		writeJSON(w, http.StatusOK, transcribeResponse{
			Warning: "voice input is not configured",
		})
		return
	}

	text, err := h.listener.Listen(r.Context())
	if err != nil {
		slog.Warn("voice capture failed", "error", err)
		writeJSON(w, http.StatusOK, transcribeResponse{
			Warning: "could not understand what you said, please try again",
		})
		return
	}

	writeJSON(w, http.StatusOK, transcribeResponse{Text: text})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
