package theory

import "strings"

// Letter is one of the seven note letters A through G.
type Letter uint8

// Letters in alphabet order. Enharmonic spellings are derived by stepping
// through this order, wrapping G back to A.
const (
	A Letter = iota
	B
	C
	D
	E
	F
	G
)

// Letters lists every letter in alphabet order.
var Letters = []Letter{A, B, C, D, E, F, G}

var letterNames = [...]string{"A", "B", "C", "D", "E", "F", "G"}

// semitones above C of each natural letter
var naturalSemitones = [...]int{9, 11, 0, 2, 4, 5, 7}

// String returns the letter name.
func (l Letter) String() string {
	if !l.valid() {
		return "?"
	}
	return letterNames[l]
}

func (l Letter) valid() bool {
	return l <= G
}

func (l Letter) next() Letter {
	return (l + 1) % 7
}

func (l Letter) prev() Letter {
	return (l + 6) % 7
}

func parseLetter(r byte) (Letter, bool) {
	switch {
	case r >= 'A' && r <= 'G':
		return Letter(r - 'A'), true
	case r >= 'a' && r <= 'g':
		return Letter(r - 'a'), true
	}
	return 0, false
}

// Accidental raises or lowers a letter by a number of semitones.
type Accidental int8

// Accidental values equal their semitone offset.
const (
	DoubleFlat  Accidental = -2
	Flat        Accidental = -1
	Natural     Accidental = 0
	Sharp       Accidental = 1
	DoubleSharp Accidental = 2
)

// Accidentals lists the accidentals from highest to lowest.
var Accidentals = []Accidental{DoubleSharp, Sharp, Natural, Flat, DoubleFlat}

// Accidental symbols as written after the letter.
const (
	SymbolDoubleSharp = "x"
	SymbolSharp       = "#"
	SymbolFlat        = "b"
	SymbolDoubleFlat  = "𝄫"
)

// Symbol returns the notation symbol, empty for naturals.
func (a Accidental) Symbol() string {
	switch a {
	case DoubleSharp:
		return SymbolDoubleSharp
	case Sharp:
		return SymbolSharp
	case Flat:
		return SymbolFlat
	case DoubleFlat:
		return SymbolDoubleFlat
	}
	return ""
}

// String returns the accidental's name.
func (a Accidental) String() string {
	switch a {
	case DoubleSharp:
		return "double sharp"
	case Sharp:
		return "sharp"
	case Natural:
		return "natural"
	case Flat:
		return "flat"
	case DoubleFlat:
		return "double flat"
	}
	return "unknown"
}

func (a Accidental) valid() bool {
	return a >= DoubleFlat && a <= DoubleSharp
}

// sharpened reports whether a raises its letter.
func (a Accidental) sharpened() bool {
	return a == Sharp || a == DoubleSharp
}

// flattened reports whether a lowers its letter.
func (a Accidental) flattened() bool {
	return a == Flat || a == DoubleFlat
}

// parseAccidental accepts a symbol, "bb" as an ASCII double flat, or "##"
// as a double sharp.
func parseAccidental(s string) (Accidental, bool) {
	switch s {
	case "":
		return Natural, true
	case SymbolDoubleSharp, "##":
		return DoubleSharp, true
	case SymbolSharp, "♯":
		return Sharp, true
	case SymbolFlat, "♭":
		return Flat, true
	case SymbolDoubleFlat, "bb":
		return DoubleFlat, true
	}
	return 0, false
}

// splitOctave separates trailing octave digits from a pitch string.
func splitOctave(s string) (class, octave string) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return strings.TrimSpace(s[:i]), s[i:]
}
