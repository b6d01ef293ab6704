package priority

import (
	"bufio"
	"fmt"
	"os"
)

// vocab holds the WordPiece vocabulary the model was trained with.
// Token IDs are line numbers (0-indexed) in vocab.txt.
type vocab struct {
	tokenToID map[string]int64
	size      int

	padID int64
	unkID int64
	clsID int64
	sepID int64
}

// loadVocab reads a vocab.txt file, one token per line.
func loadVocab(path string) (*vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}
	defer f.Close()

	tokenToID := make(map[string]int64, 32000)
	n := int64(0)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tokenToID[scanner.Text()] = n
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vocab: read %s: %w", path, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("vocab: %s is empty", path)
	}

	v := &vocab{tokenToID: tokenToID, size: int(n)}

	for _, s := range []struct {
		token string
		dest  *int64
	}{
		{"[PAD]", &v.padID},
		{"[UNK]", &v.unkID},
		{"[CLS]", &v.clsID},
		{"[SEP]", &v.sepID},
	} {
		id, ok := tokenToID[s.token]
		if !ok {
			return nil, fmt.Errorf("vocab: missing special token %s in %s", s.token, path)
		}
		*s.dest = id
	}

	return v, nil
}

// lookup returns the token ID, or the [UNK] ID for out-of-vocabulary tokens.
func (v *vocab) lookup(token string) int64 {
	if id, ok := v.tokenToID[token]; ok {
		return id
	}
	return v.unkID
}

// contains reports whether the token is in the vocabulary.
func (v *vocab) contains(token string) bool {
	_, ok := v.tokenToID[token]
	return ok
}
