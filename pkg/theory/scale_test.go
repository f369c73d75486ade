package theory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var majorScales = map[string][]string{
	"C":  {"C", "D", "E", "F", "G", "A", "B", "C"},
	"D":  {"D", "E", "F#", "G", "A", "B", "C#", "D"},
	"E":  {"E", "F#", "G#", "A", "B", "C#", "D#", "E"},
	"F":  {"F", "G", "A", "Bb", "C", "D", "E", "F"},
	"G":  {"G", "A", "B", "C", "D", "E", "F#", "G"},
	"A":  {"A", "B", "C#", "D", "E", "F#", "G#", "A"},
	"B":  {"B", "C#", "D#", "E", "F#", "G#", "A#", "B"},
	"Bb": {"Bb", "C", "D", "Eb", "F", "G", "A", "Bb"},
	"Eb": {"Eb", "F", "G", "Ab", "Bb", "C", "D", "Eb"},
	"Ab": {"Ab", "Bb", "C", "Db", "Eb", "F", "G", "Ab"},
	"Db": {"Db", "Eb", "F", "Gb", "Ab", "Bb", "C", "Db"},
	"Gb": {"Gb", "Ab", "Bb", "Cb", "Db", "Eb", "F", "Gb"},
	"F#": {"F#", "G#", "A#", "B", "C#", "D#", "E#", "F#"},
}

var minorScales = map[string][]string{
	"A":  {"A", "B", "C", "D", "E", "F", "G", "A"},
	"E":  {"E", "F#", "G", "A", "B", "C", "D", "E"},
	"D":  {"D", "E", "F", "G", "A", "Bb", "C", "D"},
	"F#": {"F#", "G#", "A", "B", "C#", "D", "E", "F#"},
	"C#": {"C#", "D#", "E", "F#", "G#", "A", "B", "C#"},
	"G#": {"G#", "A#", "B", "C#", "D#", "E", "F#", "G#"},
	"D#": {"D#", "E#", "F#", "G#", "A#", "B", "C#", "D#"},
	"Eb": {"Eb", "F", "Gb", "Ab", "Bb", "Cb", "Db", "Eb"},
	"Bb": {"Bb", "C", "Db", "Eb", "F", "Gb", "Ab", "Bb"},
	"F":  {"F", "G", "Ab", "Bb", "C", "Db", "Eb", "F"},
	"C":  {"C", "D", "Eb", "F", "G", "Ab", "Bb", "C"},
	"G":  {"G", "A", "Bb", "C", "D", "Eb", "F", "G"},
}

func TestMajorScales(t *testing.T) {
	scales := Default().Scales
	for root, expected := range majorScales {
		t.Run(root, func(t *testing.T) {
			got, err := scales.Scale(MustPitch(root+"4"), Major)
			require.NoError(t, err)
			assert.Equal(t, expected, Names(got))
		})
	}
}

func TestMinorScales(t *testing.T) {
	scales := Default().Scales
	for root, expected := range minorScales {
		t.Run(root, func(t *testing.T) {
			got, err := scales.Scale(MustPitch(root+"4"), Minor)
			require.NoError(t, err)
			assert.Equal(t, expected, Names(got))
		})
	}
}

func TestScaleInvalidRoot(t *testing.T) {
	scales := Default().Scales
	for _, root := range []string{"Cb4", "E#4", "Fx4"} {
		_, err := scales.Scale(MustPitch(root), Major)
		assert.ErrorIs(t, err, ErrInvalidKey, root)
	}

	_, err := scales.Scale(MustPitch("C#4"), Major)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = scales.Scale(MustPitch("C4"), Mode(7))
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestScaleOf(t *testing.T) {
	th := Default()
	got, err := th.ScaleOf("C4", "Major")
	require.NoError(t, err)
	assert.Equal(t, majorScales["C"], Names(got))

	_, err = th.ScaleOf("H", "M")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, err, ErrInvalidPitch)

	_, err = th.ScaleOf("C", "phrygian")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestConcurrentBuilders(t *testing.T) {
	th := Default()
	var wg sync.WaitGroup
	for root := range majorScales {
		wg.Add(1)
		go func(root string) {
			defer wg.Done()
			got, err := th.Scales.Scale(MustPitch(root), Major)
			assert.NoError(t, err)
			assert.Equal(t, majorScales[root], Names(got))
		}(root)
	}
	wg.Wait()
}
