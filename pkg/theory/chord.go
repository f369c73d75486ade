package theory

import (
	"fmt"
	"strings"
)

// ChordType selects a fixed stack of intervals above a root.
type ChordType int

// Supported chord types.
const (
	MajorTriad ChordType = iota
	MinorTriad
	DiminishedTriad
	AugmentedTriad
	MajorSeventhChord
	MinorSeventhChord
	DominantSeventhChord
	HalfDiminishedSeventhChord
	SuspendedSecond
	SuspendedFourth
)

type chordSpec struct {
	name      string
	aliases   []string
	intervals []IntervalName
}

var chordSpecs = [...]chordSpec{
	MajorTriad:                 {"major", []string{"maj", "M"}, []IntervalName{MajorThird, PerfectFifth}},
	MinorTriad:                 {"minor", []string{"min", "m"}, []IntervalName{MinorThird, PerfectFifth}},
	DiminishedTriad:            {"diminished", []string{"dim", "o"}, []IntervalName{MinorThird, Tritone}},
	AugmentedTriad:             {"augmented", []string{"aug", "+"}, []IntervalName{MajorThird, MinorSixth}},
	MajorSeventhChord:          {"major7", []string{"maj7", "M7"}, []IntervalName{MajorThird, PerfectFifth, MajorSeventh}},
	MinorSeventhChord:          {"minor7", []string{"min7", "m7"}, []IntervalName{MinorThird, PerfectFifth, MinorSeventh}},
	DominantSeventhChord:       {"dominant7", []string{"dom7", "7"}, []IntervalName{MajorThird, PerfectFifth, MinorSeventh}},
	HalfDiminishedSeventhChord: {"half-diminished7", []string{"m7b5", "ø7"}, []IntervalName{MinorThird, Tritone, MinorSeventh}},
	SuspendedSecond:            {"sus2", nil, []IntervalName{MajorSecond, PerfectFifth}},
	SuspendedFourth:            {"sus4", nil, []IntervalName{PerfectFourth, PerfectFifth}},
}

// ChordTypes lists every chord type.
var ChordTypes = []ChordType{
	MajorTriad, MinorTriad, DiminishedTriad, AugmentedTriad,
	MajorSeventhChord, MinorSeventhChord, DominantSeventhChord,
	HalfDiminishedSeventhChord, SuspendedSecond, SuspendedFourth,
}

// Valid reports whether t is a known chord type.
func (t ChordType) Valid() bool {
	return t >= MajorTriad && t <= SuspendedFourth
}

// String returns the chord type name, e.g. "dominant7".
func (t ChordType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ChordType(%d)", int(t))
	}
	return chordSpecs[t].name
}

// Intervals returns the intervals stacked above the root.
func (t ChordType) Intervals() []IntervalName {
	if !t.Valid() {
		return nil
	}
	return append([]IntervalName(nil), chordSpecs[t].intervals...)
}

// ParseChordType accepts a name such as "minor7" or an alias such as "m7".
// Aliases are case sensitive because "M" and "m" differ.
func ParseChordType(s string) (ChordType, error) {
	for _, t := range ChordTypes {
		spec := chordSpecs[t]
		if strings.EqualFold(s, spec.name) {
			return t, nil
		}
		for _, alias := range spec.aliases {
			if s == alias {
				return t, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidChordType, s)
}

// ChordBuilder spells chords from a root and a chord type.
type ChordBuilder struct {
	ie     *IntervalEngine
	er     *EnharmonicResolver
	circle *CircleOfFifths
	keys   *KeySignatureResolver
}

// NewChordBuilder wires a builder to the shared components.
func NewChordBuilder(ie *IntervalEngine, er *EnharmonicResolver, circle *CircleOfFifths, keys *KeySignatureResolver) *ChordBuilder {
	return &ChordBuilder{ie: ie, er: er, circle: circle, keys: keys}
}

// Build returns the chord tones, root first. When the root is a
// conventional tonic, tones are respelled to match the signature of the key
// implied by the chord's first interval, falling back to the minor key.
// Suspended fourths keep their literal spelling.
func (b *ChordBuilder) Build(root Pitch, t ChordType) ([]PitchClass, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChordType, int(t))
	}
	intervals := chordSpecs[t].intervals
	tones := make([]PitchClass, 0, len(intervals)+1)
	tones = append(tones, root.Class)
	for _, n := range intervals {
		tone, err := b.ie.TransposeUp(n, root.Class)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s chord on %s: %w", t, root.Class, err)
		}
		tones = append(tones, tone)
	}

	if t == SuspendedFourth || !b.circle.IsConventional(root.Class) {
		return tones, nil
	}

	mode := Minor
	if first := intervals[0]; first == MajorThird || first == MajorSecond {
		mode = Major
	}
	keyNotes, err := b.keys.Notes(root.Class, mode)
	if err != nil {
		keyNotes, err = b.keys.Notes(root.Class, Minor)
		if err != nil {
			return tones, nil
		}
	}
	for i, tone := range tones {
		alt := b.er.EnharmonicOf(tone)
		for _, k := range keyNotes {
			if alt == k {
				tones[i] = k
				break
			}
		}
	}
	return tones, nil
}
