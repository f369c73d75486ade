package theory

import (
	"fmt"
	"strings"
)

// Mode is the major or minor mode of a key.
type Mode int

// Supported modes.
const (
	Major Mode = iota
	Minor
)

// String returns "major" or "minor".
func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

// ParseMode accepts "M" or "m", or "major" and "minor" in any case.
func ParseMode(s string) (Mode, error) {
	t := strings.TrimSpace(s)
	switch t {
	case "M":
		return Major, nil
	case "m":
		return Minor, nil
	}
	switch strings.ToLower(t) {
	case "major", "maj":
		return Major, nil
	case "minor", "min":
		return Minor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// KeySignature is the count of sharps or flats implied by a key.
type KeySignature struct {
	Tonic      PitchClass
	Mode       Mode
	Count      int
	Accidental Accidental
}

// String returns "0", or the count followed by "#" or "b".
func (ks KeySignature) String() string {
	if ks.Count == 0 {
		return "0"
	}
	return fmt.Sprintf("%d%s", ks.Count, ks.Accidental.Symbol())
}

// KeySignatureResolver derives key signatures from the circle of fifths.
// Results are computed per call and never cached.
type KeySignatureResolver struct {
	circle *CircleOfFifths
}

// NewKeySignatureResolver returns a resolver reading from circle.
func NewKeySignatureResolver(circle *CircleOfFifths) *KeySignatureResolver {
	return &KeySignatureResolver{circle: circle}
}

// KeySignature counts the sharps or flats of tonic in mode. Tonics before
// the pivot count sharps by position; tonics after it count flats from the
// far end; the pivot counts six of whichever accidental the tonic carries.
// Tonics missing from the circle fail with ErrInvalidKey.
func (r *KeySignatureResolver) KeySignature(tonic PitchClass, mode Mode) (KeySignature, error) {
	ks := KeySignature{Tonic: tonic, Mode: mode, Accidental: Natural}
	pos := r.circle.Position(tonic, mode)
	switch {
	case pos < 0:
		return KeySignature{}, fmt.Errorf("%w: no conventional signature for %s %s", ErrInvalidKey, tonic, mode)
	case pos < PivotPosition:
		ks.Count = pos
		if pos > 0 {
			ks.Accidental = Sharp
		}
	case pos == PivotPosition:
		ks.Count = PivotPosition
		switch {
		case tonic.Accidental == Sharp:
			ks.Accidental = Sharp
		case tonic.Accidental == Flat:
			ks.Accidental = Flat
		default:
			return KeySignature{}, fmt.Errorf("%w: %s %s", ErrInvalidKey, tonic, mode)
		}
	default:
		ks.Count = 12 - pos
		ks.Accidental = Flat
	}
	return ks, nil
}

// Notes returns the altered pitch classes of the key in conventional order:
// F# C# G# D# A# E# B# for sharps, Bb Eb Ab Db Gb Cb Fb for flats.
func (r *KeySignatureResolver) Notes(tonic PitchClass, mode Mode) ([]PitchClass, error) {
	ks, err := r.KeySignature(tonic, mode)
	if err != nil {
		return nil, err
	}
	return r.SignatureNotes(ks), nil
}

// SignatureNotes lists the altered notes for an already resolved signature.
// Sharps follow the circle forward starting from F, flats follow it
// backward starting from B.
func (r *KeySignatureResolver) SignatureNotes(ks KeySignature) []PitchClass {
	notes := make([]PitchClass, 0, ks.Count)
	for k := 0; k < ks.Count; k++ {
		var entry CircleEntry
		if ks.Accidental == Sharp {
			entry = r.circle.majors[mod12(11+k)]
		} else {
			entry = r.circle.majors[mod12(5-k)]
		}
		notes = append(notes, PitchClass{Letter: entry.Tonics[0].Letter, Accidental: ks.Accidental})
	}
	return notes
}
