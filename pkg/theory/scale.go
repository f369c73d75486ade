package theory

import (
	"fmt"
	"slices"
)

// Cumulative semitone offsets of each scale degree, octave included.
var (
	MajorPattern = []int{0, 2, 4, 5, 7, 9, 11, 12}
	MinorPattern = []int{0, 2, 3, 5, 7, 8, 10, 12}
)

// Pattern returns the step pattern of mode.
func (m Mode) Pattern() []int {
	if m == Minor {
		return append([]int(nil), MinorPattern...)
	}
	return append([]int(nil), MajorPattern...)
}

// ScaleBuilder spells diatonic scales.
type ScaleBuilder struct {
	ci     *ChromaticIndex
	er     *EnharmonicResolver
	circle *CircleOfFifths
	keys   *KeySignatureResolver
}

// NewScaleBuilder wires a builder to the shared components.
func NewScaleBuilder(ci *ChromaticIndex, er *EnharmonicResolver, circle *CircleOfFifths, keys *KeySignatureResolver) *ScaleBuilder {
	return &ScaleBuilder{ci: ci, er: er, circle: circle, keys: keys}
}

// Scale returns the eight degrees of root's scale in mode, the tonic
// repeated at the end. Degrees start from the base spelling of each index
// and are then respelled with the key signature's notes. Roots that are
// not tonics on the circle fail with ErrInvalidKey.
func (b *ScaleBuilder) Scale(root Pitch, mode Mode) ([]PitchClass, error) {
	if mode != Major && mode != Minor {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	idx, err := b.ci.IndexOf(root.Class)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if !b.circle.Contains(root.Class) {
		return nil, fmt.Errorf("%w: %s is not a tonic on the circle of fifths", ErrInvalidKey, root.Class)
	}

	pattern := MajorPattern
	if mode == Minor {
		pattern = MinorPattern
	}
	notes := make([]PitchClass, len(pattern))
	for i, step := range pattern {
		notes[i] = b.ci.Canonical(idx + step)
	}
	if b.circle.Position(root.Class, mode) == 0 {
		return notes, nil
	}

	keyNotes, err := b.keys.Notes(root.Class, mode)
	if err != nil {
		return nil, err
	}
	for _, k := range keyNotes {
		if slices.Contains(notes, k) {
			continue
		}
		alt := b.er.EnharmonicOf(k)
		for i, n := range notes {
			if n == alt {
				notes[i] = k
			}
		}
	}
	return notes, nil
}
