package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Transcriber converts a WAV payload to text via a speech-to-text service.
type Transcriber interface {
	Transcribe(ctx context.Context, wavData []byte) (string, error)
}

// ErrNoSpeech is returned when the recognizer produced no text — the caller
// re-prompts the user rather than failing the request.
var ErrNoSpeech = fmt.Errorf("capture: no speech recognized")

// HTTPTranscriber posts captured audio to an external recognizer endpoint.
type HTTPTranscriber struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPTranscriber creates a transcriber for the recognizer at endpoint.
func NewHTTPTranscriber(endpoint, apiKey string) *HTTPTranscriber {
	return &HTTPTranscriber{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type transcribeResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the WAV payload and returns the recognized text.
// Recognition failures are degraded errors: the caller surfaces a warning
// and re-prompts, never aborts.
func (t *HTTPTranscriber) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(wavData))
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	req.Header.Set("Content-Type", "audio/wav")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("capture: recognizer request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("capture: reading recognizer response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(body)
		if len(msg) > 512 {
			msg = msg[:512]
		}
		return "", fmt.Errorf("capture: recognizer HTTP %d: %s", resp.StatusCode, msg)
	}

	var tr transcribeResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("capture: decoding recognizer response: %w", err)
	}
	text := strings.TrimSpace(tr.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}
