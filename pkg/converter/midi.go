package converter

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/james-see/muco/pkg/notation"
	"github.com/james-see/muco/pkg/theory"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// MIDIRenderer writes and reads single-track Standard MIDI Files
type MIDIRenderer struct {
	ticksPerQuarter uint16
	tempo           float64
	velocity        uint8
	channel         uint8
}

// NewMIDIRenderer creates a MIDI renderer
func NewMIDIRenderer(opts Options) *MIDIRenderer {
	opts = opts.withDefaults()
	return &MIDIRenderer{
		ticksPerQuarter: opts.TicksPerQuarter,
		tempo:           opts.Tempo,
		velocity:        opts.Velocity,
		channel:         opts.Channel,
	}
}

// Format returns FormatMIDI
func (m *MIDIRenderer) Format() Format {
	return FormatMIDI
}

// Ticks returns the length of d in ticks
func (m *MIDIRenderer) Ticks(d notation.Duration) uint32 {
	return uint32(math.Round(d.Quarters() * float64(m.ticksPerQuarter)))
}

// Render creates MIDI data from a sequence: tempo and 4/4 meter, then one
// note-on/note-off pair per block, back to back.
func (m *MIDIRenderer) Render(seq *notation.Sequence) ([]byte, error) {
	if seq == nil {
		return nil, errors.New("nil sequence")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(m.tempo))
	track.Add(0, smf.MetaMeter(4, 4))

	for i, b := range seq.Blocks() {
		key, err := b.Pitch.MIDINumber()
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		track.Add(0, midi.NoteOn(m.channel, uint8(key), m.velocity))
		track.Add(m.Ticks(b.Duration), midi.NoteOff(m.channel, uint8(key)))
	}

	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders seq to filename
func (m *MIDIRenderer) WriteFile(seq *notation.Sequence, filename string) error {
	data, err := m.Render(seq)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

type heldNote struct {
	key   uint8
	start int64
	end   int64
}

// Parse reads MIDI data back into a sequence and returns the file's tempo.
// Notes are ordered by start time, each length snapped to the nearest
// table duration and each key spelled canonically. Gaps between notes are
// dropped.
func (m *MIDIRenderer) Parse(data []byte) (*notation.Sequence, float64, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	ticksPerQuarter := m.ticksPerQuarter
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		ticksPerQuarter = mt.Resolution()
	}
	tempo := m.tempo

	var notes []heldNote
	for _, track := range s.Tracks {
		open := make(map[uint8][]int)
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)

			var bpm float64
			var channel, key, velocity uint8
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				if bpm > 0 {
					tempo = bpm
				}
			case ev.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				open[key] = append(open[key], len(notes))
				notes = append(notes, heldNote{key: key, start: tick, end: -1})
			case ev.Message.GetNoteOff(&channel, &key, &velocity),
				ev.Message.GetNoteOn(&channel, &key, &velocity):
				if held := open[key]; len(held) > 0 {
					notes[held[0]].end = tick
					open[key] = held[1:]
				}
			}
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].start < notes[j].start
	})

	seq := &notation.Sequence{}
	whole := 4 * float64(ticksPerQuarter)
	for _, n := range notes {
		if n.end < 0 {
			continue
		}
		p, err := theory.PitchFromMIDI(int(n.key))
		if err != nil {
			return nil, 0, err
		}
		d := notation.Nearest(float64(n.end-n.start) / whole)
		if err := seq.Add(p, d); err != nil {
			return nil, 0, err
		}
	}
	return seq, tempo, nil
}
