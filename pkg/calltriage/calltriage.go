package calltriage

import (
	"context"
	"errors"
	"fmt"

	"github.com/emberhq/calltriage/internal/engine"
	"github.com/emberhq/calltriage/internal/engine/priority"
	"github.com/emberhq/calltriage/internal/logstore"
	"github.com/emberhq/calltriage/internal/model"
	"github.com/emberhq/calltriage/internal/notify"
	"github.com/emberhq/calltriage/internal/translate"
)

// Triage is an emergency-call classification engine. Safe for concurrent
// use.
type Triage struct {
	engine     *engine.Engine
	classifier *priority.Classifier
	store      *logstore.Store // nil when logging is disabled
}

// New creates a Triage instance, loading the classifier artifact set. This
// is an expensive operation — create once, reuse across requests.
func New(opts ...Option) (*Triage, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	modelPath, vocabPath, labelsPath := resolvePaths(o)

	cls, err := priority.New(modelPath, vocabPath, labelsPath)
	if err != nil {
		return nil, fmt.Errorf("calltriage: %w", err)
	}

	var tr translate.Translator = identityTranslator{}
	if o.translateEndpoint != "" {
		tr = translate.New(o.translateEndpoint, o.translateAPIKey)
	}

	var appender engine.Store = discardStore{}
	var store *logstore.Store
	if o.logPath != "" {
		store, err = logstore.Open(o.logPath)
		if err != nil {
			cls.Close()
			return nil, fmt.Errorf("calltriage: %w", err)
		}
		appender = store
	}

	eng := engine.New(tr, cls, notify.Nop{}, appender)
	return &Triage{engine: eng, classifier: cls, store: store}, nil
}

// Classify runs one message through the full pipeline. coords is an
// optional "lat,lon" sender location. ErrEmptyMessage is returned for
// blank input; degraded collaborators surface as Result.Warnings.
func (t *Triage) Classify(ctx context.Context, message, coords string) (Result, error) {
	res, err := t.engine.Triage(ctx, message, coords)
	if err != nil {
		return Result{}, err
	}
	return resultFromInternal(res), nil
}

// Close releases model resources and flushes the log.
func (t *Triage) Close() error {
	var errs []error
	if t.store != nil {
		errs = append(errs, t.store.Close())
	}
	errs = append(errs, t.classifier.Close())
	return errors.Join(errs...)
}

// ErrEmptyMessage is returned by Classify for blank input.
var ErrEmptyMessage = engine.ErrEmptyMessage

// identityTranslator passes text through unchanged, used when no
// translation endpoint is configured.
type identityTranslator struct{}

func (identityTranslator) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}

// discardStore drops events, used when no log path is configured.
type discardStore struct{}

func (discardStore) Append(model.Event) error { return nil }
