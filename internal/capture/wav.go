package capture

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// EncodeWAV packs mono float32 samples into a 16-bit PCM WAV payload for
// the recognizer upload.
func EncodeWAV(samples []float32, sampleRate uint32) ([]byte, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("capture: no samples to encode")
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		// Clamp before scaling; capture devices can overshoot [-1,1].
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		data[i] = int(s * 32767)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: int(sampleRate)},
		Data:           data,
		SourceBitDepth: 16,
	}

	var ws writeSeekBuffer
	enc := wav.NewEncoder(&ws, int(sampleRate), 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("capture: encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("capture: finalizing wav: %w", err)
	}
	return ws.Bytes(), nil
}

// writeSeekBuffer is an in-memory io.WriteSeeker. The wav encoder seeks
// back to patch chunk sizes after writing.
type writeSeekBuffer struct {
	buf []byte
	pos int
}

func (w *writeSeekBuffer) Write(p []byte) (int, error) {
	if need := w.pos + len(p); need > len(w.buf) {
		grown := make([]byte, need)
		copy(grown, w.buf)
		w.buf = grown
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return len(p), nil
}

func (w *writeSeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(w.pos) + offset
	case io.SeekEnd:
		pos = int64(len(w.buf)) + offset
	default:
		return 0, fmt.Errorf("capture: invalid seek whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("capture: negative seek position")
	}
	w.pos = int(pos)
	return pos, nil
}

func (w *writeSeekBuffer) Bytes() []byte {
	return w.buf
}
