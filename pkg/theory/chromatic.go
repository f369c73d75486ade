package theory

import (
	"fmt"
	"slices"
)

// baseChromatic is the twelve-tone row spelled with naturals and sharps.
// E and B have no sharp here because E-F and B-C are half steps.
var baseChromatic = [12]PitchClass{
	{C, Natural}, {C, Sharp}, {D, Natural}, {D, Sharp},
	{E, Natural}, {F, Natural}, {F, Sharp}, {G, Natural},
	{G, Sharp}, {A, Natural}, {A, Sharp}, {B, Natural},
}

// ChromaticIndex maps every spelled pitch class to its semitone index 0-11.
// It is immutable once built and safe for concurrent use.
type ChromaticIndex struct {
	index     map[PitchClass]int
	spellings [12][]PitchClass
}

// NewChromaticIndex builds the mapping for all 35 letter and accidental
// combinations. Each index lists its base spelling first, then the
// alternates in alphabet order.
func NewChromaticIndex() *ChromaticIndex {
	ci := &ChromaticIndex{index: make(map[PitchClass]int, len(Letters)*len(Accidentals))}
	for i, pc := range baseChromatic {
		ci.add(pc, i)
	}
	for _, l := range Letters {
		for _, acc := range Accidentals {
			pc := PitchClass{Letter: l, Accidental: acc}
			if _, ok := ci.index[pc]; ok {
				continue
			}
			ci.add(pc, pc.semitone())
		}
	}
	return ci
}

func (ci *ChromaticIndex) add(pc PitchClass, idx int) {
	ci.index[pc] = idx
	ci.spellings[idx] = append(ci.spellings[idx], pc)
}

// IndexOf returns the semitone index of pc.
func (ci *ChromaticIndex) IndexOf(pc PitchClass) (int, error) {
	idx, ok := ci.index[pc]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPitch, pc)
	}
	return idx, nil
}

// IndexOfString parses s and returns its semitone index.
func (ci *ChromaticIndex) IndexOfString(s string) (int, error) {
	pc, err := ParsePitchClass(s)
	if err != nil {
		return 0, err
	}
	return ci.IndexOf(pc)
}

// Spellings returns every spelling at idx (taken mod 12), base spelling first.
func (ci *ChromaticIndex) Spellings(idx int) []PitchClass {
	return slices.Clone(ci.spellings[mod12(idx)])
}

// Canonical returns the base spelling at idx: a natural or a sharp.
func (ci *ChromaticIndex) Canonical(idx int) PitchClass {
	return ci.spellings[mod12(idx)][0]
}

// spelledWith returns the spelling at idx that uses letter l, if any.
func (ci *ChromaticIndex) spelledWith(idx int, l Letter) (PitchClass, bool) {
	for _, pc := range ci.spellings[mod12(idx)] {
		if pc.Letter == l {
			return pc, true
		}
	}
	return PitchClass{}, false
}

// Len returns the number of spellings indexed.
func (ci *ChromaticIndex) Len() int {
	return len(ci.index)
}
