package theory

import (
	"fmt"
	"strings"
)

// IntervalName is a named interval whose value is its size in semitones.
type IntervalName int

// Named intervals from unison to two octaves.
const (
	Unison IntervalName = iota
	MinorSecond
	MajorSecond
	MinorThird
	MajorThird
	PerfectFourth
	Tritone
	PerfectFifth
	MinorSixth
	MajorSixth
	MinorSeventh
	MajorSeventh
	Octave
	MinorNinth
	MajorNinth
	MinorTenth
	MajorTenth
	PerfectEleventh
	DiminishedTwelfth
	AugmentedEleventh
	PerfectTwelfth
	MinorThirteenth
	MajorThirteenth
	MinorFourteenth
	MajorFourteenth
	DoubleOctave
)

// MaxInterval is the widest span the engine names.
const MaxInterval = DoubleOctave

var intervalNames = [...]string{
	"unison", "minor second", "major second", "minor third", "major third",
	"perfect fourth", "tritone", "perfect fifth", "minor sixth", "major sixth",
	"minor seventh", "major seventh", "octave", "minor ninth", "major ninth",
	"minor tenth", "major tenth", "perfect eleventh", "diminished twelfth",
	"augmented eleventh", "perfect twelfth", "minor thirteenth",
	"major thirteenth", "minor fourteenth", "major fourteenth", "double octave",
}

var intervalShorthand = map[string]IntervalName{
	"P1": Unison, "m2": MinorSecond, "M2": MajorSecond, "m3": MinorThird,
	"M3": MajorThird, "P4": PerfectFourth, "TT": Tritone, "A4": Tritone,
	"d5": Tritone, "P5": PerfectFifth, "m6": MinorSixth, "A5": MinorSixth,
	"M6": MajorSixth, "m7": MinorSeventh, "M7": MajorSeventh, "P8": Octave,
	"m9": MinorNinth, "M9": MajorNinth, "m10": MinorTenth, "M10": MajorTenth,
	"P11": PerfectEleventh, "d12": DiminishedTwelfth,
}

// Semitones returns the size of the interval.
func (n IntervalName) Semitones() int {
	return int(n)
}

// Valid reports whether n is a named interval.
func (n IntervalName) Valid() bool {
	return n >= Unison && n <= MaxInterval
}

// String returns the lower-case name, e.g. "perfect fifth".
func (n IntervalName) String() string {
	if !n.Valid() {
		return fmt.Sprintf("IntervalName(%d)", int(n))
	}
	return intervalNames[n]
}

// ParseIntervalName accepts a name ("perfect fifth", "PERFECT_FIFTH"),
// shorthand ("P5", "m3", "TT") or a semitone count ("7").
//
// Above 18 semitones the named constants run one semitone wider than the
// usual compound sizes (PerfectTwelfth is 20, DoubleOctave 25), so no
// shorthand is offered past "d12"; use the name or the semitone count.
func ParseIntervalName(s string) (IntervalName, error) {
	s = strings.TrimSpace(s)
	if n, ok := intervalShorthand[s]; ok {
		return n, nil
	}
	norm := strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(s))
	for i, name := range intervalNames {
		if norm == name {
			return IntervalName(i), nil
		}
	}
	var semis int
	if _, err := fmt.Sscanf(s, "%d", &semis); err == nil && fmt.Sprint(semis) == s {
		if n := IntervalName(semis); n.Valid() {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
}

// Direction tells whether an interval rises or falls.
type Direction int

// Interval directions. Unisons count as ascending.
const (
	Ascending Direction = iota
	Descending
)

// String returns "ascending" or "descending".
func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// ParseDirection accepts "up"/"ascending" and "down"/"descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "up", "ascending", "asc":
		return Ascending, nil
	case "down", "descending", "desc":
		return Descending, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// IntervalEngine measures, names, inverts and transposes intervals.
type IntervalEngine struct {
	ci *ChromaticIndex
	er *EnharmonicResolver
}

// NewIntervalEngine wires an engine to the shared lookup tables.
func NewIntervalEngine(ci *ChromaticIndex, er *EnharmonicResolver) *IntervalEngine {
	return &IntervalEngine{ci: ci, er: er}
}

// Semitones returns the absolute distance between two pitches, computed
// from index + 12*octave. Spans wider than MaxInterval fail with
// ErrIntervalTooLarge.
func (ie *IntervalEngine) Semitones(low, high Pitch) (int, error) {
	if err := ie.check(low, high); err != nil {
		return 0, err
	}
	return span(low, high)
}

func span(low, high Pitch) (int, error) {
	d := high.height() - low.height()
	if d < 0 {
		d = -d
	}
	if d > int(MaxInterval) {
		return 0, fmt.Errorf("%w: %s to %s spans %d semitones", ErrIntervalTooLarge, low, high, d)
	}
	return d, nil
}

func (ie *IntervalEngine) check(pitches ...Pitch) error {
	for _, p := range pitches {
		if _, err := ie.ci.IndexOf(p.Class); err != nil {
			return err
		}
	}
	return nil
}

// Name returns the named interval between two pitches.
func (ie *IntervalEngine) Name(low, high Pitch) (IntervalName, error) {
	d, err := ie.Semitones(low, high)
	if err != nil {
		return 0, err
	}
	return IntervalName(d), nil
}

// Direction compares sounding height: descending when low sits above high.
func (ie *IntervalEngine) Direction(low, high Pitch) Direction {
	if low.height() > high.height() {
		return Descending
	}
	return Ascending
}

// Invert returns the inversion of the interval from low to high: the octave
// less its size, so a unison inverts to an octave and back. Compound
// intervals are first reduced to within an octave, so C4 to E5 inverts like
// C4 to E4. Neither input is modified.
func (ie *IntervalEngine) Invert(low, high Pitch) (IntervalName, error) {
	d, err := ie.Semitones(low, high)
	if err != nil {
		return 0, err
	}
	if d > int(Octave) {
		d %= int(Octave)
		if d == 0 {
			d = int(Octave)
		}
	}
	return Octave - IntervalName(d), nil
}

// TransposeUp returns the pitch class n above root.
func (ie *IntervalEngine) TransposeUp(n IntervalName, root PitchClass) (PitchClass, error) {
	return ie.transpose(n, root, Ascending)
}

// TransposeDown returns the pitch class n below root.
func (ie *IntervalEngine) TransposeDown(n IntervalName, root PitchClass) (PitchClass, error) {
	return ie.transpose(n, root, Descending)
}

// transpose picks the base spelling at the target index, then respells a
// sharp target as a flat when the root calls for flats. Going up only a
// flattened root does; going down a natural root does too.
func (ie *IntervalEngine) transpose(n IntervalName, root PitchClass, dir Direction) (PitchClass, error) {
	if !n.Valid() {
		return PitchClass{}, fmt.Errorf("%w: %d semitones", ErrInvalidInterval, int(n))
	}
	idx, err := ie.ci.IndexOf(root)
	if err != nil {
		return PitchClass{}, err
	}
	if dir == Ascending {
		idx += n.Semitones()
	} else {
		idx -= n.Semitones()
	}
	candidates := ie.ci.spellings[mod12(idx)]
	target := candidates[0]
	if len(candidates) == 1 || target.Accidental == Natural {
		return target, nil
	}

	flats := root.Accidental.flattened()
	if dir == Descending && root.Accidental == Natural {
		flats = true
	}
	if flats {
		return ie.er.EnharmonicOf(target), nil
	}
	return target, nil
}

// TransposePitchUp returns the pitch n above root, in whichever octave
// keeps the distance exact.
func (ie *IntervalEngine) TransposePitchUp(n IntervalName, root Pitch) (Pitch, error) {
	return ie.transposePitch(n, root, Ascending)
}

// TransposePitchDown returns the pitch n below root.
func (ie *IntervalEngine) TransposePitchDown(n IntervalName, root Pitch) (Pitch, error) {
	return ie.transposePitch(n, root, Descending)
}

func (ie *IntervalEngine) transposePitch(n IntervalName, root Pitch, dir Direction) (Pitch, error) {
	pc, err := ie.transpose(n, root.Class, dir)
	if err != nil {
		return Pitch{}, err
	}
	height := root.height() + n.Semitones()
	if dir == Descending {
		height = root.height() - n.Semitones()
	}
	octave := (height - pc.semitone()) / 12
	if err := checkOctave(octave); err != nil {
		return Pitch{}, fmt.Errorf("transpose %s %s from %s: %w", dir, n, root, err)
	}
	return Pitch{Class: pc, Octave: octave}, nil
}
