package theory

import (
	"fmt"
	"math"
)

// Octave bounds and the octave assumed when none is written.
const (
	MinOctave     = 0
	MaxOctave     = 10
	DefaultOctave = 4
)

// PitchClass is a spelled note name without an octave, such as "C#".
// Two classes are equal only when spelled identically.
type PitchClass struct {
	Letter     Letter
	Accidental Accidental
}

// ParsePitchClass parses letter[accidental], e.g. "Eb", "F#", "Bx", "D𝄫".
func ParsePitchClass(s string) (PitchClass, error) {
	if s == "" {
		return PitchClass{}, fmt.Errorf("%w: empty pitch class", ErrInvalidPitch)
	}
	letter, ok := parseLetter(s[0])
	if !ok {
		return PitchClass{}, fmt.Errorf("%w: %q has no letter A-G", ErrInvalidPitch, s)
	}
	acc, ok := parseAccidental(s[1:])
	if !ok {
		return PitchClass{}, fmt.Errorf("%w: %q has an unknown accidental", ErrInvalidPitch, s)
	}
	return PitchClass{Letter: letter, Accidental: acc}, nil
}

// MustPitchClass is like ParsePitchClass but panics on error.
func MustPitchClass(s string) PitchClass {
	pc, err := ParsePitchClass(s)
	if err != nil {
		panic(err)
	}
	return pc
}

// String returns the spelling, e.g. "Bb".
func (pc PitchClass) String() string {
	return pc.Letter.String() + pc.Accidental.Symbol()
}

// Valid reports whether the letter and accidental are in range.
func (pc PitchClass) Valid() bool {
	return pc.Letter.valid() && pc.Accidental.valid()
}

// semitone returns the chromatic index by arithmetic, wrapping mod 12.
func (pc PitchClass) semitone() int {
	return mod12(naturalSemitones[pc.Letter] + int(pc.Accidental))
}

// Pitch is a pitch class placed in an octave, in scientific pitch notation.
// Pitch is a value type; methods return modified copies.
type Pitch struct {
	Class  PitchClass
	Octave int
}

// NewPitch builds a pitch from a class spelling and an octave in [0, 10].
func NewPitch(class string, octave int) (Pitch, error) {
	pc, err := ParsePitchClass(class)
	if err != nil {
		return Pitch{}, err
	}
	if err := checkOctave(octave); err != nil {
		return Pitch{}, err
	}
	return Pitch{Class: pc, Octave: octave}, nil
}

// MustPitch is like ParsePitch but panics on error.
func MustPitch(spn string) Pitch {
	p, err := ParsePitch(spn)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePitch parses scientific pitch notation such as "C#4". A missing
// octave defaults to DefaultOctave.
func ParsePitch(spn string) (Pitch, error) {
	class, digits := splitOctave(spn)
	octave := DefaultOctave
	if digits != "" {
		if _, err := fmt.Sscanf(digits, "%d", &octave); err != nil {
			return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidOctave, spn)
		}
	}
	return NewPitch(class, octave)
}

func checkOctave(octave int) error {
	if octave < MinOctave || octave > MaxOctave {
		return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidOctave, octave, MinOctave, MaxOctave)
	}
	return nil
}

// String returns the pitch in scientific pitch notation.
func (p Pitch) String() string {
	return fmt.Sprintf("%s%d", p.Class, p.Octave)
}

// Valid reports whether p has a valid class and an octave in [0, 10].
func (p Pitch) Valid() bool {
	return p.Class.Valid() && checkOctave(p.Octave) == nil
}

// WithOctave returns a copy of p moved to another octave.
func (p Pitch) WithOctave(octave int) (Pitch, error) {
	if err := checkOctave(octave); err != nil {
		return Pitch{}, err
	}
	p.Octave = octave
	return p, nil
}

// height orders pitches by sounding height: index + 12*octave.
func (p Pitch) height() int {
	return p.Class.semitone() + 12*p.Octave
}

// MIDINumber returns (octave+1)*12 + chromatic index, C4 being 60.
func (p Pitch) MIDINumber() (int, error) {
	n := (p.Octave+1)*12 + p.Class.semitone()
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: %s is MIDI note %d", ErrInvalidNoteRange, p, n)
	}
	return n, nil
}

// Frequency returns the equal-tempered frequency in Hz relative to A4=440,
// rounded to two decimals.
func (p Pitch) Frequency() (float64, error) {
	n, err := p.MIDINumber()
	if err != nil {
		return 0, err
	}
	return FrequencyOfMIDI(n), nil
}

// FrequencyOfMIDI returns 440 * 2^((n-69)/12) rounded to two decimals.
func FrequencyOfMIDI(n int) float64 {
	f := 440 * math.Pow(2, float64(n-69)/12)
	return math.Round(f*100) / 100
}

// PitchFromMIDI returns the canonical spelling of a MIDI note number.
func PitchFromMIDI(n int) (Pitch, error) {
	if n < 0 || n > 127 {
		return Pitch{}, fmt.Errorf("%w: %d", ErrInvalidNoteRange, n)
	}
	octave := n/12 - 1
	if err := checkOctave(octave); err != nil {
		return Pitch{}, fmt.Errorf("%w: MIDI note %d: %w", ErrInvalidNoteRange, n, err)
	}
	return Pitch{Class: baseChromatic[n%12], Octave: octave}, nil
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}
