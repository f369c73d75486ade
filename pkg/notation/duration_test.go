package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationLength(t *testing.T) {
	tests := []struct {
		d        Duration
		expected float64
	}{
		{Whole, 1.0},
		{Half, 0.5},
		{Quarter, 0.25},
		{Eighth, 0.125},
		{Sixteenth, 0.0625},
		{ThirtySecond, 0.03125},
		{Unresolved, 0},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.Length(); got != tt.expected {
				t.Errorf("%v.Length() = %v, want %v", tt.d, got, tt.expected)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected Duration
	}{
		{"whole", Whole},
		{"Half", Half},
		{"QUARTER_NOTE", Quarter},
		{"thirty-second", ThirtySecond},
		{"THIRTY_SECOND_NOTE", ThirtySecond},
		{"0.125", Eighth},
		{"1", Whole},
		{"1/16", Sixteenth},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, input := range []string{"", "dotted", "0.3", "2", "1/3", "1/0"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDuration(input)
			assert.ErrorIs(t, err, ErrInvalidDuration)
		})
	}
}

func TestDurationSeconds(t *testing.T) {
	assert.InDelta(t, 0.5, Quarter.Seconds(120), 1e-9)
	assert.InDelta(t, 2.0, Whole.Seconds(120), 1e-9)
	assert.InDelta(t, 1.0, Quarter.Seconds(60), 1e-9)
	assert.Zero(t, Quarter.Seconds(0))
}

func TestNearest(t *testing.T) {
	assert.Equal(t, Quarter, Nearest(0.26))
	assert.Equal(t, Whole, Nearest(3))
	assert.Equal(t, ThirtySecond, Nearest(0.001))
}
