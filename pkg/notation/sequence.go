package notation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/james-see/muco/pkg/theory"
)

// Block is one note of a sequence.
type Block struct {
	Pitch    theory.Pitch
	Duration Duration
}

// String returns the block as "C#4:quarter".
func (b Block) String() string {
	return b.Pitch.String() + ":" + b.Duration.String()
}

// Sequence is an append-only list of blocks; insertion order is playback
// order.
type Sequence struct {
	blocks []Block
}

// NewSequence returns a sequence holding blocks, validated as by Add.
func NewSequence(blocks ...Block) (*Sequence, error) {
	s := &Sequence{}
	if err := s.AddBlocks(blocks...); err != nil {
		return nil, err
	}
	return s, nil
}

// Add appends one note. The duration must be resolved.
func (s *Sequence) Add(p theory.Pitch, d Duration) error {
	return s.AddBlocks(Block{Pitch: p, Duration: d})
}

// AddBlocks appends blocks in order. Either all blocks are appended or,
// when one fails validation, none are.
func (s *Sequence) AddBlocks(blocks ...Block) error {
	for i, b := range blocks {
		if !b.Duration.Valid() {
			return fmt.Errorf("block %d (%s): %w: duration must be resolved", i, b.Pitch, ErrInvalidDuration)
		}
		if !b.Pitch.Valid() {
			return fmt.Errorf("block %d (%s): %w", i, b.Pitch, theory.ErrInvalidPitch)
		}
	}
	s.blocks = append(s.blocks, blocks...)
	return nil
}

// Blocks returns a copy of the blocks.
func (s *Sequence) Blocks() []Block {
	return slices.Clone(s.blocks)
}

// Len returns the number of blocks.
func (s *Sequence) Len() int {
	return len(s.blocks)
}

// Length returns the total length in whole notes.
func (s *Sequence) Length() float64 {
	var total float64
	for _, b := range s.blocks {
		total += b.Duration.Length()
	}
	return total
}

// String formats the sequence in the text notation read by ParseSequence.
func (s *Sequence) String() string {
	parts := make([]string, len(s.blocks))
	for i, b := range s.blocks {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// ParseSequence reads whitespace or comma separated "pitch:duration"
// tokens, e.g. "C4:quarter E4:0.25 G4:1/2". A token without a duration is
// a quarter note.
func ParseSequence(text string) (*Sequence, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	s := &Sequence{}
	for _, field := range fields {
		spn, dur, hasDur := strings.Cut(field, ":")
		p, err := theory.ParsePitch(spn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", field, err)
		}
		d := Quarter
		if hasDur {
			if d, err = ParseDuration(dur); err != nil {
				return nil, fmt.Errorf("failed to parse %q: %w", field, err)
			}
		}
		if err := s.Add(p, d); err != nil {
			return nil, err
		}
	}
	return s, nil
}
