package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emberhq/calltriage/internal/engine"
	"github.com/emberhq/calltriage/internal/logstore"
	"github.com/emberhq/calltriage/internal/model"
)

type stubTriage struct {
	result engine.Result
	err    error
}

func (s *stubTriage) Triage(_ context.Context, message, coords string) (engine.Result, error) {
	if s.err != nil {
		return engine.Result{}, s.err
	}
	return s.result, nil
}

type stubEvents struct {
	events []model.Event
	err    error
	filter logstore.Filter
}

func (s *stubEvents) Query(filter logstore.Filter) ([]model.Event, error) {
	s.filter = filter
	return s.events, s.err
}

type stubListener struct {
	text string
	err  error
}

func (s *stubListener) Listen(context.Context) (string, error) {
	return s.text, s.err
}

func fireResult() engine.Result {
	return engine.Result{
		Event: model.Event{
			Timestamp:         time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC),
			OriginalMessage:   "there is a fire",
			TranslatedMessage: "there is a fire",
			Priority:          "High",
			Confidence:        91.2,
			Category:          model.Fire,
		},
		Department:   "Fire Department",
		Distribution: map[string]float64{"High": 0.912, "Medium": 0.06, "Low": 0.028},
	}
}

func TestTriageEndpoint(t *testing.T) {
	router := NewRouter(&stubTriage{result: fireResult()}, &stubEvents{}, nil, nil)

	body := strings.NewReader(`{"message":"there is a fire","coordinates":"1,2"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/triage", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res engine.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if res.Event.Category != model.Fire {
		t.Errorf("category = %s, want Fire", res.Event.Category)
	}
	if res.Department != "Fire Department" {
		t.Errorf("department = %q", res.Department)
	}
}

func TestTriageEndpointEmptyMessage(t *testing.T) {
	router := NewRouter(&stubTriage{err: engine.ErrEmptyMessage}, &stubEvents{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/triage", strings.NewReader(`{"message":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTriageEndpointBadBody(t *testing.T) {
	router := NewRouter(&stubTriage{result: fireResult()}, &stubEvents{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/triage", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTriageEndpointInternalError(t *testing.T) {
	router := NewRouter(&stubTriage{err: errors.New("inference failed")}, &stubEvents{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/triage", strings.NewReader(`{"message":"help"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestEventsEndpointPassesFilters(t *testing.T) {
	events := &stubEvents{events: []model.Event{fireResult().Event}}
	router := NewRouter(&stubTriage{}, events, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?priority=High&category=Fire", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if events.filter.Priority != "High" || events.filter.Category != "Fire" {
		t.Errorf("filter = %+v", events.filter)
	}

	var resp eventsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Errorf("got %d events, want 1", len(resp.Events))
	}
}

func TestEventsEndpointDegradesOnStoreError(t *testing.T) {
	events := &stubEvents{err: errors.New("malformed csv")}
	router := NewRouter(&stubTriage{}, events, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (soft failure)", rec.Code)
	}
	var resp eventsResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Warning == "" {
		t.Error("expected a warning for unreadable store")
	}
	if len(resp.Events) != 0 {
		t.Errorf("expected empty event list, got %d", len(resp.Events))
	}
}

func TestTranscribeEndpoint(t *testing.T) {
	router := NewRouter(&stubTriage{}, &stubEvents{}, &stubListener{text: "there is a fire"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp transcribeResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Text != "there is a fire" {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.Warning != "" {
		t.Errorf("unexpected warning %q", resp.Warning)
	}
}

func TestTranscribeEndpointDegrades(t *testing.T) {
	router := NewRouter(&stubTriage{}, &stubEvents{}, &stubListener{err: errors.New("mic error")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (soft failure)", rec.Code)
	}
	var resp transcribeResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Text != "" {
		t.Errorf("text should be empty, got %q", resp.Text)
	}
	if resp.Warning == "" {
		t.Error("expected re-prompt warning")
	}
}

func TestTranscribeEndpointUnconfigured(t *testing.T) {
	router := NewRouter(&stubTriage{}, &stubEvents{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp transcribeResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Warning == "" {
		t.Error("expected not-configured warning")
	}
}
