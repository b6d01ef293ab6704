package calltriage

import "path/filepath"

type options struct {
	modelDir          string
	modelPath         string
	vocabPath         string
	labelsPath        string
	translateEndpoint string
	translateAPIKey   string
	logPath           string
}

// Option configures a Triage instance.
type Option func(*options)

// WithModelDir sets the directory containing the classifier artifact set.
// Expects: model.onnx, vocab.txt, labels.txt.
func WithModelDir(dir string) Option {
	return func(o *options) {
		o.modelDir = dir
	}
}

// WithModelPaths sets explicit paths for each artifact file. Use this when
// the files aren't in the default directory layout.
func WithModelPaths(model, vocab, labels string) Option {
	return func(o *options) {
		o.modelPath = model
		o.vocabPath = vocab
		o.labelsPath = labels
	}
}

// WithTranslation enables translation through a LibreTranslate-compatible
// endpoint. apiKey may be empty for unauthenticated instances. Without
// this option, messages are classified as given.
func WithTranslation(endpoint, apiKey string) Option {
	return func(o *options) {
		o.translateEndpoint = endpoint
		o.translateAPIKey = apiKey
	}
}

// WithLogPath enables the append-only CSV log at path. Without this
// option, classifications are not persisted.
func WithLogPath(path string) Option {
	return func(o *options) {
		o.logPath = path
	}
}

// resolvePaths determines the artifact file paths from the configured
// options. Explicit paths take precedence over modelDir.
func resolvePaths(o options) (model, vocab, labels string) {
	if o.modelPath != "" {
		return o.modelPath, o.vocabPath, o.labelsPath
	}
	dir := o.modelDir
	if dir == "" {
		dir = "models"
	}
	return filepath.Join(dir, "model.onnx"),
		filepath.Join(dir, "vocab.txt"),
		filepath.Join(dir, "labels.txt")
}
