package converter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/james-see/muco/pkg/notation"
)

const (
	bitDepth     = 16
	numChannels  = 1
	pcmFormat    = 1
	maxAmplitude = 32767
)

// WAVRenderer synthesizes a sine tone per block into 16-bit mono PCM
type WAVRenderer struct {
	sampleRate int
	tempo      float64
}

// NewWAVRenderer creates a WAV renderer
func NewWAVRenderer(opts Options) *WAVRenderer {
	opts = opts.withDefaults()
	return &WAVRenderer{sampleRate: opts.SampleRate, tempo: opts.Tempo}
}

// Format returns FormatWAV
func (w *WAVRenderer) Format() Format {
	return FormatWAV
}

// SampleRate returns the output sample rate in Hz
func (w *WAVRenderer) SampleRate() int {
	return w.sampleRate
}

// Samples returns how many samples a block of duration d occupies
func (w *WAVRenderer) Samples(d notation.Duration) int {
	return int(float64(w.sampleRate) * d.Seconds(w.tempo))
}

// Synthesize returns the PCM samples for seq. Sequences longer than
// MaxRenderSeconds fail with ErrSequenceTooLong before any allocation.
func (w *WAVRenderer) Synthesize(seq *notation.Sequence) ([]int, error) {
	if seq == nil {
		return nil, errors.New("nil sequence")
	}
	blocks := seq.Blocks()
	limit := w.sampleRate * MaxRenderSeconds
	total := 0
	for _, b := range blocks {
		total += w.Samples(b.Duration)
		if total > limit {
			return nil, fmt.Errorf("%w: more than %d seconds of audio", ErrSequenceTooLong, MaxRenderSeconds)
		}
	}
	samples := make([]int, 0, total)
	for i, b := range blocks {
		freq, err := b.Pitch.Frequency()
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		n := w.Samples(b.Duration)
		for j := 0; j < n; j++ {
			v := math.Sin(2 * math.Pi * freq * float64(j) / float64(w.sampleRate))
			samples = append(samples, int(maxAmplitude*v))
		}
	}
	return samples, nil
}

// Render creates WAV data from a sequence
func (w *WAVRenderer) Render(seq *notation.Sequence) ([]byte, error) {
	var out writeSeekBuffer
	if err := w.Encode(&out, seq); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Encode writes seq as WAV to ws
func (w *WAVRenderer) Encode(ws io.WriteSeeker, seq *notation.Sequence) error {
	samples, err := w.Synthesize(seq)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(ws, w.sampleRate, bitDepth, numChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Data:           samples,
		Format:         &audio.Format{SampleRate: w.sampleRate, NumChannels: numChannels},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// WriteFile renders seq to filename
func (w *WAVRenderer) WriteFile(seq *notation.Sequence, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	if err := w.Encode(f, seq); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeSeekBuffer is an in-memory io.WriteSeeker; the WAV encoder seeks
// back to patch chunk sizes when it closes.
type writeSeekBuffer struct {
	buf []byte
	pos int
}

func (b *writeSeekBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.buf) {
		b.buf = append(b.buf, make([]byte, end-len(b.buf))...)
	}
	copy(b.buf[b.pos:], p)
	b.pos = end
	return len(p), nil
}

func (b *writeSeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.buf))
	default:
		return 0, errors.New("invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("negative position")
	}
	b.pos = int(next)
	return next, nil
}

func (b *writeSeekBuffer) Bytes() []byte {
	return b.buf
}
