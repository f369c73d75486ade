package notation

import (
	"testing"

	"github.com/james-see/muco/pkg/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceAdd(t *testing.T) {
	s := &Sequence{}
	require.NoError(t, s.Add(theory.MustPitch("C4"), Quarter))
	require.NoError(t, s.Add(theory.MustPitch("E4"), Half))

	err := s.Add(theory.MustPitch("G4"), Unresolved)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	assert.Equal(t, 2, s.Len())
	assert.InDelta(t, 0.75, s.Length(), 1e-9)
	assert.Equal(t, "C4:quarter E4:half", s.String())
}

func TestSequenceAddBlocksIsAllOrNothing(t *testing.T) {
	s := &Sequence{}
	err := s.AddBlocks(
		Block{Pitch: theory.MustPitch("C4"), Duration: Quarter},
		Block{Pitch: theory.MustPitch("D4")},
	)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Zero(t, s.Len())

	err = s.AddBlocks(Block{Pitch: theory.Pitch{Octave: 12}, Duration: Half})
	assert.ErrorIs(t, err, theory.ErrInvalidPitch)
}

func TestSequenceBlocksIsCopy(t *testing.T) {
	s, err := NewSequence(Block{Pitch: theory.MustPitch("A4"), Duration: Whole})
	require.NoError(t, err)

	blocks := s.Blocks()
	blocks[0].Duration = Eighth
	assert.Equal(t, Whole, s.Blocks()[0].Duration)
}

func TestParseSequence(t *testing.T) {
	s, err := ParseSequence("C4:quarter, E4:0.25\nG4:1/2 C5")
	require.NoError(t, err)

	expected := []Block{
		{Pitch: theory.MustPitch("C4"), Duration: Quarter},
		{Pitch: theory.MustPitch("E4"), Duration: Quarter},
		{Pitch: theory.MustPitch("G4"), Duration: Half},
		{Pitch: theory.MustPitch("C5"), Duration: Quarter},
	}
	assert.Equal(t, expected, s.Blocks())

	again, err := ParseSequence(s.String())
	require.NoError(t, err)
	assert.Equal(t, s.Blocks(), again.Blocks())
}

func TestParseSequenceErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"H4:quarter", theory.ErrInvalidPitch},
		{"C12:quarter", theory.ErrInvalidOctave},
		{"C4:dotted", ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseSequence(tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
