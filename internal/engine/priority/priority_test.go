package priority

import (
	"math"
	"os"
	"testing"
)

const (
	testModelPath  = "../../../models/model.onnx"
	testVocabPath  = "../../../models/vocab.txt"
	testLabelsPath = "../../../models/labels.txt"
)

func skipWithoutModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); os.IsNotExist(err) {
		t.Skip("priority model not available, skipping integration test")
	}
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{2.0, 1.0, 0.1})

	var sum float64
	for _, p := range probs {
		if p <= 0 || p >= 1 {
			t.Errorf("probability %f out of (0,1)", p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %f, want 1", sum)
	}
	if !(probs[0] > probs[1] && probs[1] > probs[2]) {
		t.Errorf("softmax did not preserve logit ordering: %v", probs)
	}
}

func TestSoftmaxUniformLogits(t *testing.T) {
	probs := softmax([]float32{5, 5, 5})
	for _, p := range probs {
		if math.Abs(p-1.0/3.0) > 1e-9 {
			t.Errorf("expected uniform distribution, got %v", probs)
		}
	}
}

func TestSoftmaxLargeLogits(t *testing.T) {
	// Max-shifting must keep exp() finite.
	probs := softmax([]float32{1000, 999, 998})
	for _, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Fatalf("softmax overflowed: %v", probs)
		}
	}
}

func TestNewPrediction(t *testing.T) {
	labels := []string{"High", "Low", "Medium"}
	p := newPrediction(labels, []float64{0.2, 0.1, 0.7})

	if p.Label != "Medium" {
		t.Errorf("Label = %q, want Medium", p.Label)
	}
	if math.Abs(p.Confidence-70.0) > 1e-9 {
		t.Errorf("Confidence = %f, want 70", p.Confidence)
	}
	if p.Confidence < 0 || p.Confidence > 100 {
		t.Errorf("Confidence %f out of [0,100]", p.Confidence)
	}
	if len(p.Distribution) != 3 {
		t.Errorf("Distribution has %d entries, want 3", len(p.Distribution))
	}
	if p.Distribution["High"] != 0.2 {
		t.Errorf("Distribution[High] = %f, want 0.2", p.Distribution["High"])
	}

	// Confidence must equal the distribution maximum times 100.
	maxProb := 0.0
	for _, prob := range p.Distribution {
		if prob > maxProb {
			maxProb = prob
		}
	}
	if math.Abs(p.Confidence-maxProb*100) > 1e-9 {
		t.Errorf("Confidence %f != max(distribution)*100 = %f", p.Confidence, maxProb*100)
	}
}

func TestPredictIntegration(t *testing.T) {
	skipWithoutModel(t)

	cls, err := New(testModelPath, testVocabPath, testLabelsPath)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { cls.Close() })

	p, err := cls.Predict("there is a fire in my building")
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if p.Label == "" {
		t.Error("empty label")
	}
	if p.Confidence <= 0 || p.Confidence > 100 {
		t.Errorf("Confidence = %f, want (0,100]", p.Confidence)
	}

	var sum float64
	for _, prob := range p.Distribution {
		sum += prob
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("distribution sums to %f, want 1", sum)
	}
}
