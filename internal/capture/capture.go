// Package capture provides bounded microphone capture and delegation to an
// external speech-to-text collaborator. Both halves fail softly: a capture
// or recognition failure leaves the user's input empty and surfaces a
// warning to re-prompt.
package capture

import (
	"context"
	"fmt"
	"time"
)

// Service ties the microphone recorder to a transcriber.
type Service struct {
	recorder    *Recorder
	transcriber Transcriber
	sampleRate  uint32
	listenLimit time.Duration // overall cap on one listen action
	phraseLimit time.Duration // cap on recorded audio length
}

// NewService creates a capture service. listenLimit bounds the whole
// operation; phraseLimit bounds the recorded audio itself.
func NewService(rec *Recorder, tr Transcriber, sampleRate uint32, listenLimit, phraseLimit time.Duration) *Service {
	return &Service{
		recorder:    rec,
		transcriber: tr,
		sampleRate:  sampleRate,
		listenLimit: listenLimit,
		phraseLimit: phraseLimit,
	}
}

// Listen records one phrase from the microphone and returns its transcript.
// Capture never blocks past the listen limit: recording stops at the phrase
// limit and the remaining budget covers recognition.
func (s *Service) Listen(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.listenLimit)
	defer cancel()

	if err := s.recorder.Start(); err != nil {
		return "", err
	}

	phrase := time.NewTimer(s.phraseLimit)
	defer phrase.Stop()
	select {
	case <-ctx.Done():
	case <-phrase.C:
	}

	samples := s.recorder.Stop()
	if len(samples) == 0 {
		return "", fmt.Errorf("capture: microphone produced no audio")
	}

	wavData, err := EncodeWAV(samples, s.sampleRate)
	if err != nil {
		return "", err
	}

	return s.transcriber.Transcribe(ctx, wavData)
}
