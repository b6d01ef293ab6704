// Package priority wraps the pre-trained urgency classifier. The ONNX
// model, WordPiece vocabulary, and class-label list are a co-versioned
// artifact set: they come from the same training export and are only ever
// loaded together.
package priority

import (
	"fmt"
	"math"
)

// Predictor produces an urgency label with a class-probability
// distribution for a piece of text.
type Predictor interface {
	Predict(text string) (Prediction, error)
	Close() error
}

// Prediction is one classifier verdict.
type Prediction struct {
	Label        string             // highest-probability class
	Confidence   float64            // max class probability as a percentage in [0,100]
	Distribution map[string]float64 // probability per class, sums to 1
}

// Classifier runs local inference against the artifact set. Create once at
// startup and reuse; loading is the expensive part.
type Classifier struct {
	session *onnxSession
	tok     *tokenizer
	labels  []string
}

// New loads the artifact set. Any missing or mismatched file is a hard
// error — the service cannot classify without the full set.
func New(modelPath, vocabPath, labelsPath string) (*Classifier, error) {
	sess, err := newONNXSession(modelPath)
	if err != nil {
		return nil, fmt.Errorf("priority: %w", err)
	}

	tok, err := newTokenizer(vocabPath)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("priority: %w", err)
	}

	labels, err := loadLabels(labelsPath)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("priority: %w", err)
	}

	if int(sess.numClasses) != len(labels) {
		sess.close()
		return nil, fmt.Errorf("priority: model has %d output classes but labels file lists %d — artifact files are from different exports",
			sess.numClasses, len(labels))
	}

	return &Classifier{session: sess, tok: tok, labels: labels}, nil
}

// Labels returns the class labels in model output order.
func (c *Classifier) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Predict classifies text in a single inference call. The label and the
// distribution always come from the same probability vector.
func (c *Classifier) Predict(text string) (Prediction, error) {
	ids, mask, typeIDs := c.tok.encode(text)

	logits, err := c.session.infer(ids, mask, typeIDs)
	if err != nil {
		return Prediction{}, fmt.Errorf("priority: %w", err)
	}

	probs := softmax(logits)
	return newPrediction(c.labels, probs), nil
}

// Close releases ONNX Runtime resources.
func (c *Classifier) Close() error {
	return c.session.close()
}

// newPrediction builds a Prediction from per-class probabilities.
func newPrediction(labels []string, probs []float64) Prediction {
	dist := make(map[string]float64, len(labels))
	best := 0
	for i, label := range labels {
		dist[label] = probs[i]
		if probs[i] > probs[best] {
			best = i
		}
	}
	return Prediction{
		Label:        labels[best],
		Confidence:   probs[best] * 100,
		Distribution: dist,
	}
}

// softmax converts logits to probabilities, shifted by the max logit for
// numerical stability.
func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}
	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(float64(l - maxLogit))
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
