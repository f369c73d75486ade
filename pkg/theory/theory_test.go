package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheoryTranspose(t *testing.T) {
	th := Default()
	tests := []struct {
		note, interval string
		dir            Direction
		want           string
	}{
		{"C", "P5", Ascending, "G"},
		{"C4", "P5", Ascending, "G4"},
		{"C4", "major third", Descending, "Ab3"},
		{"B4", "m2", Ascending, "C5"},
		{"Eb", "octave", Ascending, "Eb"},
		{"A", "7", Descending, "D"},
	}
	for _, tt := range tests {
		t.Run(tt.note+" "+tt.interval, func(t *testing.T) {
			got, err := th.Transpose(tt.note, tt.interval, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTheoryTransposeErrors(t *testing.T) {
	th := Default()
	_, err := th.Transpose("H4", "P5", Ascending)
	assert.ErrorIs(t, err, ErrInvalidPitch)

	for _, interval := range []string{"P15", "P16", "26"} {
		_, err = th.Transpose("C", interval, Ascending)
		assert.ErrorIs(t, err, ErrInvalidInterval, interval)
	}

	_, err = th.Transpose("C0", "m3", Descending)
	assert.ErrorIs(t, err, ErrInvalidOctave)
}

func TestIntervalBetween(t *testing.T) {
	th := Default()
	n, err := th.IntervalBetween("C4", "G4")
	require.NoError(t, err)
	assert.Equal(t, PerfectFifth, n)

	_, err = th.IntervalBetween("C1", "C9")
	assert.ErrorIs(t, err, ErrIntervalTooLarge)
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"", "up", "Ascending"} {
		d, err := ParseDirection(s)
		require.NoError(t, err)
		assert.Equal(t, Ascending, d)
	}
	d, err := ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
