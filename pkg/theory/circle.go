package theory

import (
	"fmt"
	"slices"
	"strings"
)

// PivotPosition is the circle position where sharp and flat spellings meet.
const PivotPosition = 6

// CircleEntry is one position on the circle of fifths. Every position holds
// a single tonic except the pivot, which holds a sharp and a flat spelling.
type CircleEntry struct {
	Tonics []PitchClass
}

// Contains reports whether pc is one of the entry's spellings.
func (e CircleEntry) Contains(pc PitchClass) bool {
	return slices.Contains(e.Tonics, pc)
}

// IsPivot reports whether the entry holds two spellings.
func (e CircleEntry) IsPivot() bool {
	return len(e.Tonics) > 1
}

// String joins the spellings with a slash, e.g. "F#/Gb".
func (e CircleEntry) String() string {
	names := make([]string, len(e.Tonics))
	for i, t := range e.Tonics {
		names[i] = t.String()
	}
	return strings.Join(names, "/")
}

// CircleOfFifths holds the twelve major tonics ordered by ascending fifths
// from C, and their relative minors at the same positions.
type CircleOfFifths struct {
	majors [12]CircleEntry
	minors [12]CircleEntry
}

// NewCircleOfFifths derives the circle by repeated fifths from C. Positions
// past the pivot are respelled on the flat side; relative minors lie a
// minor third below each tonic and are respelled on the sharp side before
// the pivot.
func NewCircleOfFifths(ie *IntervalEngine, er *EnharmonicResolver) (*CircleOfFifths, error) {
	c := &CircleOfFifths{}
	tonic := PitchClass{Letter: C, Accidental: Natural}
	for i := range c.majors {
		if i > 0 {
			next, err := ie.TransposeUp(PerfectFifth, tonic)
			if err != nil {
				return nil, fmt.Errorf("failed to build circle of fifths: %w", err)
			}
			tonic = next
		}
		switch {
		case i == PivotPosition:
			c.majors[i] = CircleEntry{Tonics: []PitchClass{{F, Sharp}, {G, Flat}}}
		case i > PivotPosition:
			c.majors[i] = CircleEntry{Tonics: []PitchClass{er.EnharmonicOf(tonic)}}
		default:
			c.majors[i] = CircleEntry{Tonics: []PitchClass{tonic}}
		}
	}

	for i, entry := range c.majors {
		if i == PivotPosition {
			c.minors[i] = CircleEntry{Tonics: []PitchClass{{D, Sharp}, {E, Flat}}}
			continue
		}
		minor, err := ie.TransposeDown(MinorThird, entry.Tonics[0])
		if err != nil {
			return nil, fmt.Errorf("failed to build relative minors: %w", err)
		}
		if i < PivotPosition {
			minor = er.EnharmonicOf(minor)
		}
		c.minors[i] = CircleEntry{Tonics: []PitchClass{minor}}
	}
	return c, nil
}

// Majors returns the major tonics in circle order.
func (c *CircleOfFifths) Majors() []CircleEntry {
	return slices.Clone(c.majors[:])
}

// RelativeMinors returns the relative minor tonics in circle order.
func (c *CircleOfFifths) RelativeMinors() []CircleEntry {
	return slices.Clone(c.minors[:])
}

// Entries returns the list for mode.
func (c *CircleOfFifths) Entries(mode Mode) []CircleEntry {
	if mode == Minor {
		return c.RelativeMinors()
	}
	return c.Majors()
}

// Position returns where pc sits in the list for mode, or -1.
func (c *CircleOfFifths) Position(pc PitchClass, mode Mode) int {
	list := &c.majors
	if mode == Minor {
		list = &c.minors
	}
	for i, e := range list {
		if e.Contains(pc) {
			return i
		}
	}
	return -1
}

// Contains reports whether pc is a tonic in either list.
func (c *CircleOfFifths) Contains(pc PitchClass) bool {
	return c.Position(pc, Major) >= 0 || c.Position(pc, Minor) >= 0
}

// IsConventional reports whether pc is a single-spelled tonic in either
// list. The pivot spellings are excluded.
func (c *CircleOfFifths) IsConventional(pc PitchClass) bool {
	for _, list := range [][12]CircleEntry{c.majors, c.minors} {
		for _, e := range list {
			if !e.IsPivot() && e.Contains(pc) {
				return true
			}
		}
	}
	return false
}
