// Package notation provides note durations and the flat sequence of
// pitched, timed blocks handed to the MIDI and WAV renderers.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDuration is returned for durations outside the fixed table.
var ErrInvalidDuration = errors.New("invalid duration")

// Duration is a note value from whole note down to thirty-second note.
// The zero value is unresolved and is rejected by Sequence.
type Duration uint8

// Note values, longest first.
const (
	Unresolved Duration = iota
	Whole
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
)

// Durations lists every resolved duration, longest first.
var Durations = []Duration{Whole, Half, Quarter, Eighth, Sixteenth, ThirtySecond}

var durationNames = [...]string{"", "whole", "half", "quarter", "eighth", "sixteenth", "thirty-second"}

// Valid reports whether d is resolved.
func (d Duration) Valid() bool {
	return d >= Whole && d <= ThirtySecond
}

// Length returns the note value as a fraction of a whole note: 1, 1/2, ...
// 1/32. Unresolved durations have length 0.
func (d Duration) Length() float64 {
	if !d.Valid() {
		return 0
	}
	return 1 / float64(uint(1)<<(d-Whole))
}

// Quarters returns the length in quarter notes.
func (d Duration) Quarters() float64 {
	return d.Length() * 4
}

// Seconds returns how long d lasts at tempo quarter notes per minute.
func (d Duration) Seconds(tempo float64) float64 {
	if tempo <= 0 {
		return 0
	}
	return d.Quarters() * 60 / tempo
}

// String returns the duration name, e.g. "quarter".
func (d Duration) String() string {
	if !d.Valid() {
		return "unresolved"
	}
	return durationNames[d]
}

// ParseDuration resolves a name ("quarter", "QUARTER_NOTE"), a decimal
// length ("0.25") or a fraction ("1/4").
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	name := strings.ToLower(s)
	name = strings.TrimSuffix(strings.TrimSuffix(name, "_note"), " note")
	name = strings.ReplaceAll(name, "_", "-")
	for _, d := range Durations {
		if name == durationNames[d] {
			return d, nil
		}
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		m, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && m != 0 {
			return DurationOf(n / m)
		}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return DurationOf(v)
	}
	return Unresolved, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
}

// DurationOf resolves an exact length in whole notes.
func DurationOf(length float64) (Duration, error) {
	for _, d := range Durations {
		if d.Length() == length {
			return d, nil
		}
	}
	return Unresolved, fmt.Errorf("%w: %v is not a table value", ErrInvalidDuration, length)
}

// Nearest returns the duration whose length is closest to length.
func Nearest(length float64) Duration {
	best := Whole
	for _, d := range Durations {
		if abs(d.Length()-length) < abs(best.Length()-length) {
			best = d
		}
	}
	return best
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
