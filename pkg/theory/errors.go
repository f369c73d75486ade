package theory

import "errors"

// Validation errors. Failures in this package wrap these sentinels so
// callers can branch with errors.Is.
var (
	ErrInvalidPitch     = errors.New("invalid pitch")
	ErrInvalidOctave    = errors.New("invalid octave")
	ErrIntervalTooLarge = errors.New("interval too large")
	ErrInvalidKey       = errors.New("invalid key")
	ErrInvalidMode      = errors.New("invalid mode")
	ErrInvalidChordType = errors.New("invalid chord type")
	ErrInvalidNoteRange = errors.New("note out of MIDI range")
	ErrInvalidInterval  = errors.New("invalid interval")
)
