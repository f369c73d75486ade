// Package converter renders note sequences to Standard MIDI Files and WAV
// audio, and converts between notation, MIDI and WAV files.
package converter

import (
	"errors"
	"math"

	"github.com/james-see/muco/pkg/config"
	"github.com/james-see/muco/pkg/notation"
)

// Render limits.
const (
	MinTempo         = 20  // slowest tempo accepted from requests, in BPM
	MaxRenderSeconds = 600 // longest audio a WAV render may produce
)

// ErrSequenceTooLong is returned when a sequence would synthesize more than
// MaxRenderSeconds of audio.
var ErrSequenceTooLong = errors.New("sequence too long to render")

// Options control rendering.
type Options struct {
	Tempo           float64 // quarter notes per minute
	TicksPerQuarter uint16  // MIDI resolution
	Velocity        uint8   // MIDI note-on velocity (1-127)
	Channel         uint8   // MIDI channel (0-15)
	SampleRate      int     // WAV sample rate in Hz
}

// DefaultOptions returns 120 BPM, 480 ticks per quarter, velocity 64 on
// channel 0 and 44.1 kHz audio.
func DefaultOptions() Options {
	return Options{
		Tempo:           config.DefaultTempo,
		TicksPerQuarter: config.DefaultTicksPerQuarter,
		Velocity:        config.DefaultVelocity,
		SampleRate:      config.DefaultSampleRate,
	}
}

// OptionsFromConfig takes rendering settings from cfg, keeping defaults for
// values out of range.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Tempo > 0 {
		opts.Tempo = cfg.Tempo
	}
	if cfg.TicksPerQuarter > 0 && cfg.TicksPerQuarter <= 0x7FFF {
		opts.TicksPerQuarter = uint16(cfg.TicksPerQuarter)
	}
	if cfg.Velocity > 0 && cfg.Velocity <= 127 {
		opts.Velocity = uint8(cfg.Velocity)
	}
	if cfg.SampleRate > 0 {
		opts.SampleRate = cfg.SampleRate
	}
	return opts
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if !(o.Tempo > 0) || math.IsInf(o.Tempo, 1) {
		o.Tempo = d.Tempo
	}
	if o.TicksPerQuarter == 0 {
		o.TicksPerQuarter = d.TicksPerQuarter
	}
	if o.Velocity == 0 || o.Velocity > 127 {
		o.Velocity = d.Velocity
	}
	if o.SampleRate <= 0 {
		o.SampleRate = d.SampleRate
	}
	o.Channel &= 0x0F
	return o
}

// ConversionResult holds the result of a conversion
type ConversionResult struct {
	Data     []byte
	Filename string
	Format   Format
}

// Renderer turns a sequence into the bytes of one file format
type Renderer interface {
	Format() Format
	Render(seq *notation.Sequence) ([]byte, error)
	WriteFile(seq *notation.Sequence, filename string) error
}

// Converter handles rendering and format conversions
type Converter struct {
	opts Options
	midi *MIDIRenderer
	wav  *WAVRenderer
}

// New creates a Converter; zero option fields take their defaults.
func New(opts Options) *Converter {
	opts = opts.withDefaults()
	return &Converter{
		opts: opts,
		midi: NewMIDIRenderer(opts),
		wav:  NewWAVRenderer(opts),
	}
}

// Options returns the rendering options in effect
func (c *Converter) Options() Options {
	return c.opts
}

// MIDI returns the MIDI renderer
func (c *Converter) MIDI() *MIDIRenderer {
	return c.midi
}

// WAV returns the WAV renderer
func (c *Converter) WAV() *WAVRenderer {
	return c.wav
}

// Renderer returns the renderer producing format, if there is one
func (c *Converter) Renderer(format Format) (Renderer, bool) {
	for _, r := range []Renderer{c.midi, c.wav} {
		if r.Format() == format {
			return r, true
		}
	}
	return nil, false
}
