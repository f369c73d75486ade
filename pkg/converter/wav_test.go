package converter

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/james-see/muco/pkg/notation"
	"github.com/james-see/muco/pkg/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVSamples(t *testing.T) {
	w := NewWAVRenderer(Options{SampleRate: 8000, Tempo: 120})
	tests := []struct {
		d        notation.Duration
		expected int
	}{
		{notation.Whole, 16000},
		{notation.Quarter, 4000},
		{notation.ThirtySecond, 500},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := w.Samples(tt.d); got != tt.expected {
				t.Errorf("Samples(%v) = %d, want %d", tt.d, got, tt.expected)
			}
		})
	}
}

func TestWAVSynthesize(t *testing.T) {
	w := NewWAVRenderer(Options{SampleRate: 8000, Tempo: 120})
	samples, err := w.Synthesize(mustSequence(t, "A4:quarter C5:eighth"))
	require.NoError(t, err)
	require.Len(t, samples, 6000)

	assert.Equal(t, 0, samples[0])
	for _, s := range samples {
		if s > maxAmplitude || s < -maxAmplitude {
			t.Fatalf("sample %d outside 16-bit range", s)
		}
	}
}

func TestWAVRenderDecodes(t *testing.T) {
	w := NewWAVRenderer(Options{SampleRate: 8000, Tempo: 120})
	data, err := w.Render(mustSequence(t, "A4:quarter A4:quarter"))
	require.NoError(t, err)

	dec := wav.NewDecoder(bytes.NewReader(data))
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 8000, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Len(t, buf.Data, 8000)
}

func TestWAVSynthesizeTooLong(t *testing.T) {
	w := NewWAVRenderer(Options{SampleRate: 8000, Tempo: 120})
	// 300 whole notes at 120 BPM is exactly the limit
	_, err := w.Synthesize(mustSequence(t, strings.Repeat("C4:whole ", 300)))
	require.NoError(t, err)

	_, err = w.Synthesize(mustSequence(t, strings.Repeat("C4:whole ", 301)))
	assert.ErrorIs(t, err, ErrSequenceTooLong)

	slow := NewWAVRenderer(Options{SampleRate: 8000, Tempo: 0.001})
	_, err = slow.Render(mustSequence(t, "C4:whole"))
	assert.ErrorIs(t, err, ErrSequenceTooLong)
}

func TestWAVRenderErrors(t *testing.T) {
	w := NewWAVRenderer(DefaultOptions())
	_, err := w.Render(nil)
	assert.Error(t, err)

	seq := &notation.Sequence{}
	require.NoError(t, seq.Add(theory.MustPitch("B10"), notation.Quarter))
	_, err = w.Render(seq)
	assert.ErrorIs(t, err, theory.ErrInvalidNoteRange)
}

func TestWriteSeekBuffer(t *testing.T) {
	var b writeSeekBuffer
	_, err := b.Write([]byte("hello world"))
	require.NoError(t, err)

	pos, err := b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.Zero(t, pos)
	_, err = b.Write([]byte("HELLO"))
	require.NoError(t, err)

	pos, err = b.Seek(-1, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos)
	_, err = b.Write([]byte("D!"))
	require.NoError(t, err)

	assert.Equal(t, "HELLO worlD!", string(b.Bytes()))

	_, err = b.Seek(-100, io.SeekCurrent)
	assert.Error(t, err)
}
