package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePitchClass(t *testing.T) {
	tests := []struct {
		input    string
		expected PitchClass
	}{
		{"C", PitchClass{C, Natural}},
		{"C#", PitchClass{C, Sharp}},
		{"Db", PitchClass{D, Flat}},
		{"Bx", PitchClass{B, DoubleSharp}},
		{"E𝄫", PitchClass{E, DoubleFlat}},
		{"Ebb", PitchClass{E, DoubleFlat}},
		{"f#", PitchClass{F, Sharp}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pc, err := ParsePitchClass(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pc)
		})
	}
}

func TestParsePitchClassInvalid(t *testing.T) {
	for _, input := range []string{"", "H", "C?", "C###", "4"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParsePitchClass(input)
			assert.ErrorIs(t, err, ErrInvalidPitch)
		})
	}
}

func TestPitchClassString(t *testing.T) {
	tests := []struct {
		pc       PitchClass
		expected string
	}{
		{PitchClass{G, Natural}, "G"},
		{PitchClass{A, Sharp}, "A#"},
		{PitchClass{B, Flat}, "Bb"},
		{PitchClass{F, DoubleSharp}, "Fx"},
		{PitchClass{D, DoubleFlat}, "D𝄫"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pc.String())
		})
	}
}

func TestNewPitch(t *testing.T) {
	p, err := NewPitch("C#", 4)
	require.NoError(t, err)
	assert.Equal(t, "C#4", p.String())

	_, err = NewPitch("H", 4)
	assert.ErrorIs(t, err, ErrInvalidPitch)

	_, err = NewPitch("C", 11)
	assert.ErrorIs(t, err, ErrInvalidOctave)

	_, err = NewPitch("C", -1)
	assert.ErrorIs(t, err, ErrInvalidOctave)
}

func TestParsePitch(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"C4", "C4"},
		{"Bb3", "Bb3"},
		{"F#10", "F#10"},
		{"A0", "A0"},
		{"G", "G4"},
		{"D𝄫2", "D𝄫2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePitch(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.String())
		})
	}

	_, err := ParsePitch("C11")
	assert.ErrorIs(t, err, ErrInvalidOctave)
	_, err = ParsePitch("H4")
	assert.ErrorIs(t, err, ErrInvalidPitch)
}

func TestPitchEqualityIsSpelling(t *testing.T) {
	assert.Equal(t, MustPitch("C#4"), MustPitch("C#4"))
	assert.NotEqual(t, MustPitch("C#4"), MustPitch("Db4"))
}

func TestWithOctaveReturnsCopy(t *testing.T) {
	p := MustPitch("E4")
	moved, err := p.WithOctave(5)
	require.NoError(t, err)
	assert.Equal(t, 5, moved.Octave)
	assert.Equal(t, 4, p.Octave)

	_, err = p.WithOctave(11)
	assert.ErrorIs(t, err, ErrInvalidOctave)
}

func TestMIDINumber(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"C4", 60},
		{"A4", 69},
		{"C0", 12},
		{"Db4", 61},
		{"B3", 59},
		{"G9", 127},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := MustPitch(tt.input).MIDINumber()
			require.NoError(t, err)
			if n != tt.expected {
				t.Errorf("MIDINumber(%q) = %d, want %d", tt.input, n, tt.expected)
			}
		})
	}

	_, err := MustPitch("A10").MIDINumber()
	assert.ErrorIs(t, err, ErrInvalidNoteRange)
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"A4", 440.0},
		{"A3", 220.0},
		{"C4", 261.63},
		{"E4", 329.63},
		{"A5", 880.0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := MustPitch(tt.input).Frequency()
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, f, 1e-9)
		})
	}
}

func TestPitchFromMIDI(t *testing.T) {
	p, err := PitchFromMIDI(61)
	require.NoError(t, err)
	assert.Equal(t, "C#4", p.String())

	p, err = PitchFromMIDI(127)
	require.NoError(t, err)
	assert.Equal(t, "G9", p.String())

	_, err = PitchFromMIDI(128)
	assert.ErrorIs(t, err, ErrInvalidNoteRange)
	_, err = PitchFromMIDI(5)
	assert.ErrorIs(t, err, ErrInvalidNoteRange)
}
