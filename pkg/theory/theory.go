// Package theory provides pitch arithmetic for spelled notes: chromatic
// indexing, enharmonic respelling, intervals, the circle of fifths, key
// signatures, chords and scales.
package theory

import (
	"fmt"
	"strings"
	"sync"
)

// Theory holds the lookup tables and the components built on them. All
// tables are built once in New and only read afterwards, so a Theory is
// safe for concurrent use.
type Theory struct {
	Chromatic   *ChromaticIndex
	Enharmonics *EnharmonicResolver
	Intervals   *IntervalEngine
	Circle      *CircleOfFifths
	Keys        *KeySignatureResolver
	Chords      *ChordBuilder
	Scales      *ScaleBuilder
}

// New builds every table and wires the components together.
func New() (*Theory, error) {
	ci := NewChromaticIndex()
	er := NewEnharmonicResolver(ci)
	ie := NewIntervalEngine(ci, er)
	circle, err := NewCircleOfFifths(ie, er)
	if err != nil {
		return nil, err
	}
	keys := NewKeySignatureResolver(circle)
	return &Theory{
		Chromatic:   ci,
		Enharmonics: er,
		Intervals:   ie,
		Circle:      circle,
		Keys:        keys,
		Chords:      NewChordBuilder(ie, er, circle, keys),
		Scales:      NewScaleBuilder(ci, er, circle, keys),
	}, nil
}

var defaultTheory = sync.OnceValue(func() *Theory {
	t, err := New()
	if err != nil {
		panic(fmt.Sprintf("theory: building default tables: %v", err))
	}
	return t
})

// Default returns a process-wide Theory, built on first use.
func Default() *Theory {
	return defaultTheory()
}

// ChordOf builds a chord from strings, e.g. ChordOf("Bb4", "minor7").
func (t *Theory) ChordOf(root, chordType string) ([]PitchClass, error) {
	p, err := ParsePitch(root)
	if err != nil {
		return nil, err
	}
	ct, err := ParseChordType(chordType)
	if err != nil {
		return nil, err
	}
	return t.Chords.Build(p, ct)
}

// ScaleOf builds a scale from strings. An unparseable root fails with both
// ErrInvalidKey and ErrInvalidPitch.
func (t *Theory) ScaleOf(root, mode string) ([]PitchClass, error) {
	p, err := ParsePitch(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return t.Scales.Scale(p, m)
}

// KeySignatureOf resolves a key signature from strings. Any octave on the
// tonic is ignored.
func (t *Theory) KeySignatureOf(tonic, mode string) (KeySignature, error) {
	p, err := ParsePitch(tonic)
	if err != nil {
		return KeySignature{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	m, err := ParseMode(mode)
	if err != nil {
		return KeySignature{}, err
	}
	return t.Keys.KeySignature(p.Class, m)
}

// Transpose moves note by the named interval. A note written with an
// octave ("Eb4") moves as a Pitch and the result carries an octave; a bare
// class ("Eb") moves as a PitchClass.
func (t *Theory) Transpose(note, interval string, dir Direction) (string, error) {
	n, err := ParseIntervalName(interval)
	if err != nil {
		return "", err
	}
	if _, octave := splitOctave(strings.TrimSpace(note)); octave != "" {
		p, err := ParsePitch(note)
		if err != nil {
			return "", err
		}
		var out Pitch
		if dir == Descending {
			out, err = t.Intervals.TransposePitchDown(n, p)
		} else {
			out, err = t.Intervals.TransposePitchUp(n, p)
		}
		if err != nil {
			return "", err
		}
		return out.String(), nil
	}
	pc, err := ParsePitchClass(note)
	if err != nil {
		return "", err
	}
	var out PitchClass
	if dir == Descending {
		out, err = t.Intervals.TransposeDown(n, pc)
	} else {
		out, err = t.Intervals.TransposeUp(n, pc)
	}
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// IntervalBetween parses two SPN pitches and names the distance between
// them.
func (t *Theory) IntervalBetween(low, high string) (IntervalName, error) {
	lp, err := ParsePitch(low)
	if err != nil {
		return 0, err
	}
	hp, err := ParsePitch(high)
	if err != nil {
		return 0, err
	}
	return t.Intervals.Name(lp, hp)
}

// Names renders pitch classes as strings.
func Names(pcs []PitchClass) []string {
	names := make([]string, len(pcs))
	for i, pc := range pcs {
		names[i] = pc.String()
	}
	return names
}
