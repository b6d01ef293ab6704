package priority

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeTestVocab builds a tiny WordPiece vocabulary so tokenizer tests run
// without the real model artifacts.
func writeTestVocab(t *testing.T) string {
	t.Helper()
	tokens := []string{
		"[PAD]", "[UNK]", "[CLS]", "[SEP]",
		"fire", "in", "my", "building", "help", "him",
		"rob", "##bed", "gas", "leak", ",", "!",
	}
	path := filepath.Join(t.TempDir(), "vocab.txt")
	if err := os.WriteFile(path, []byte(strings.Join(tokens, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testTokenizer(t *testing.T) *tokenizer {
	t.Helper()
	tok, err := newTokenizer(writeTestVocab(t))
	if err != nil {
		t.Fatalf("newTokenizer error: %v", err)
	}
	return tok
}

func TestVocabSpecialTokens(t *testing.T) {
	v, err := loadVocab(writeTestVocab(t))
	if err != nil {
		t.Fatalf("loadVocab error: %v", err)
	}
	if v.padID != 0 || v.unkID != 1 || v.clsID != 2 || v.sepID != 3 {
		t.Errorf("special IDs = %d %d %d %d, want 0 1 2 3", v.padID, v.unkID, v.clsID, v.sepID)
	}
	if v.lookup("fire") != 4 {
		t.Errorf("lookup(fire) = %d, want 4", v.lookup("fire"))
	}
	if v.lookup("nonexistent") != v.unkID {
		t.Error("unknown token should map to [UNK]")
	}
}

func TestVocabMissingSpecialToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	os.WriteFile(path, []byte("fire\nsmoke\n"), 0644)
	if _, err := loadVocab(path); err == nil {
		t.Error("expected error for vocab without special tokens")
	}
}

func TestEncodeFramesSequence(t *testing.T) {
	tok := testTokenizer(t)

	ids, mask, typeIDs := tok.encode("fire in my building")

	want := []int64{2, 4, 5, 6, 7, 3} // [CLS] fire in my building [SEP]
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	for i, m := range mask {
		if m != 1 {
			t.Errorf("mask[%d] = %d, want 1", i, m)
		}
	}
	for i, ty := range typeIDs {
		if ty != 0 {
			t.Errorf("typeIDs[%d] = %d, want 0", i, ty)
		}
	}
}

func TestEncodeLowercasesAndSplitsPunctuation(t *testing.T) {
	tok := testTokenizer(t)

	ids, _, _ := tok.encode("FIRE, help!")

	want := []int64{2, 4, 14, 8, 15, 3} // [CLS] fire , help ! [SEP]
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestEncodeWordpieceSubwords(t *testing.T) {
	tok := testTokenizer(t)

	ids, _, _ := tok.encode("robbed")

	want := []int64{2, 10, 11, 3} // [CLS] rob ##bed [SEP]
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestEncodeUnknownWord(t *testing.T) {
	tok := testTokenizer(t)

	ids, _, _ := tok.encode("xylophone")

	want := []int64{2, 1, 3} // [CLS] [UNK] [SEP]
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestEncodeTruncatesLongInput(t *testing.T) {
	tok := testTokenizer(t)

	ids, _, _ := tok.encode(strings.Repeat("fire ", 300))

	if len(ids) != maxSeqLen {
		t.Errorf("len(ids) = %d, want %d", len(ids), maxSeqLen)
	}
	if ids[0] != 2 || ids[len(ids)-1] != 3 {
		t.Error("truncated sequence must still be framed by [CLS] and [SEP]")
	}
}

func TestStripAccents(t *testing.T) {
	if got := stripAccents("incendié"); got != "incendie" {
		t.Errorf("stripAccents = %q, want incendie", got)
	}
}

func TestCleanText(t *testing.T) {
	if got := cleanText("fire\x00\tin\nmy building"); got != "fire in my building" {
		t.Errorf("cleanText = %q", got)
	}
}

func TestLoadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	os.WriteFile(path, []byte("High\nMedium\nLow\n"), 0644)

	labels, err := loadLabels(path)
	if err != nil {
		t.Fatalf("loadLabels error: %v", err)
	}
	want := []string{"High", "Medium", "Low"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
}

func TestLoadLabelsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	os.WriteFile(path, []byte("\n\n"), 0644)
	if _, err := loadLabels(path); err == nil {
		t.Error("expected error for labels file with no entries")
	}
}
