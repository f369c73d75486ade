package theory

import "slices"

// EnharmonicResolver finds alternate spellings of the same sounding pitch.
//
// Sharpened spellings resolve to the next letter and flattened spellings to
// the previous letter, so A# and Bb map to each other while Ax maps to B.
// Naturals resolve to themselves.
type EnharmonicResolver struct {
	ci    *ChromaticIndex
	table map[PitchClass]PitchClass
}

// NewEnharmonicResolver derives the spelling table from ci.
func NewEnharmonicResolver(ci *ChromaticIndex) *EnharmonicResolver {
	er := &EnharmonicResolver{ci: ci, table: make(map[PitchClass]PitchClass, len(ci.index))}
	for pc, idx := range ci.index {
		target := pc.Letter
		switch {
		case pc.Accidental.sharpened():
			target = pc.Letter.next()
		case pc.Accidental.flattened():
			target = pc.Letter.prev()
		}
		if alt, ok := ci.spelledWith(idx, target); ok {
			er.table[pc] = alt
		}
	}
	return er
}

// HasEnharmonic reports whether another spelling sounds the same as pc.
func (er *EnharmonicResolver) HasEnharmonic(pc PitchClass) bool {
	idx, err := er.ci.IndexOf(pc)
	if err != nil {
		return false
	}
	return len(er.ci.spellings[idx]) > 1
}

// EnharmonicOf returns the alternate spelling of pc, or pc itself when the
// table has no entry for it.
func (er *EnharmonicResolver) EnharmonicOf(pc PitchClass) PitchClass {
	if alt, ok := er.table[pc]; ok {
		return alt
	}
	for k, v := range er.table {
		if v == pc && k != pc {
			return k
		}
	}
	return pc
}

// EnharmonicOfPitch respells p keeping its octave.
func (er *EnharmonicResolver) EnharmonicOfPitch(p Pitch) Pitch {
	p.Class = er.EnharmonicOf(p.Class)
	return p
}

// AllEnharmonics returns every spelling sharing pc's index, pc included,
// in alphabet order. Invalid input yields just pc.
func (er *EnharmonicResolver) AllEnharmonics(pc PitchClass) []PitchClass {
	idx, err := er.ci.IndexOf(pc)
	if err != nil {
		return []PitchClass{pc}
	}
	all := slices.Clone(er.ci.spellings[idx])
	slices.SortFunc(all, comparePitchClass)
	return all
}

// comparePitchClass orders by letter, then by accidental from double sharp
// down to double flat.
func comparePitchClass(a, b PitchClass) int {
	if a.Letter != b.Letter {
		return int(a.Letter) - int(b.Letter)
	}
	return int(b.Accidental) - int(a.Accidental)
}
