package priority

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// loadLabels reads labels.txt, one class label per line, where the line
// number (0-indexed) is the class index in the model's output layer. The
// file ships with the model it was exported from.
func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("labels: read %s: %w", path, err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels: %s has no labels", path)
	}
	return labels, nil
}
