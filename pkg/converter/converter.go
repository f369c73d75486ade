package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/james-see/muco/pkg/logger"
	"github.com/james-see/muco/pkg/notation"
)

// Format represents a file format
type Format string

const (
	FormatMIDI     Format = "midi"
	FormatWAV      Format = "wav"
	FormatNotation Format = "notation"
	FormatUnknown  Format = "unknown"
)

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mid", ".midi":
		return FormatMIDI
	case ".wav", ".wave":
		return FormatWAV
	case ".mcn", ".txt":
		return FormatNotation
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	// Standard MIDI File header chunk
	if bytes.HasPrefix(data, []byte("MThd")) {
		return FormatMIDI
	}

	// RIFF container with a WAVE form type
	if len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WAVE" {
		return FormatWAV
	}

	if utf8.Valid(data) {
		return FormatNotation
	}
	return FormatUnknown
}

// Extension returns the preferred file extension of f
func (f Format) Extension() string {
	switch f {
	case FormatMIDI:
		return ".mid"
	case FormatWAV:
		return ".wav"
	case FormatNotation:
		return ".mcn"
	}
	return ""
}

// ReadSequence decodes notation text or MIDI data into a sequence
func (c *Converter) ReadSequence(data []byte, format Format) (*notation.Sequence, error) {
	switch format {
	case FormatNotation:
		return notation.ParseSequence(string(data))
	case FormatMIDI:
		seq, _, err := c.midi.Parse(data)
		return seq, err
	case FormatWAV:
		return nil, errors.New("reading notes from WAV audio is not supported")
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// Render encodes seq in the given format
func (c *Converter) Render(seq *notation.Sequence, format Format) ([]byte, error) {
	if seq == nil {
		return nil, errors.New("nil sequence")
	}
	start := time.Now()
	var (
		data []byte
		err  error
	)
	if format == FormatNotation {
		data = []byte(seq.String() + "\n")
	} else {
		r, ok := c.Renderer(format)
		if !ok {
			return nil, fmt.Errorf("unsupported output format: %s", format)
		}
		data, err = r.Render(seq)
	}
	if err != nil {
		return nil, err
	}
	logger.LogRender(string(format), seq.Len(), len(data), time.Since(start))
	return data, nil
}

// Convert re-encodes data from one format to another
func (c *Converter) Convert(data []byte, from, to Format) ([]byte, error) {
	if from == to {
		return nil, fmt.Errorf("unsupported conversion: %s to %s", from, to)
	}
	var (
		seq *notation.Sequence
		err error
	)
	target := c
	if from == FormatMIDI {
		// MIDI input carries its own tempo
		var tempo float64
		seq, tempo, err = c.midi.Parse(data)
		if err == nil && tempo > 0 && tempo != c.opts.Tempo {
			opts := c.opts
			opts.Tempo = tempo
			target = New(opts)
		}
	} else {
		seq, err = c.ReadSequence(data, from)
	}
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}
	out, err := target.Render(seq, to)
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}
	return out, nil
}

// ConvertNamed converts data uploaded under filename, detecting its format
// from the name first and the content second. The result is named after
// the input with the extension of to.
func (c *Converter) ConvertNamed(data []byte, filename string, to Format) (*ConversionResult, error) {
	from := DetectFormat(filename)
	if from == FormatUnknown {
		from = DetectFormatFromContent(data)
	}
	out, err := c.Convert(data, from, to)
	if err != nil {
		return nil, err
	}
	name := OutputPath(filepath.Base(filename), to)
	if strings.HasPrefix(name, ".") {
		name = "converted" + name
	}
	return &ConversionResult{Data: out, Filename: name, Format: to}, nil
}

// ParseFormat maps a format name or extension ("midi", "mid", ".wav") to
// a Format.
func ParseFormat(s string) Format {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch s {
	case "midi", "mid":
		return FormatMIDI
	case "wav", "wave":
		return FormatWAV
	case "notation", "mcn", "txt", "text":
		return FormatNotation
	}
	return FormatUnknown
}

// ConvertFile converts a file from one format to another
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	inputFormat := DetectFormat(inputPath)
	if inputFormat == FormatUnknown {
		inputFormat = DetectFormatFromContent(data)
	}

	outputFormat := DetectFormat(outputPath)
	if outputFormat == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	outputData, err := c.Convert(data, inputFormat, outputFormat)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// RenderFile writes seq to path in the format implied by its extension
func (c *Converter) RenderFile(seq *notation.Sequence, path string) error {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}
	r, ok := c.Renderer(format)
	if !ok {
		data, err := c.Render(seq, format)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	}
	if seq == nil {
		return errors.New("nil sequence")
	}

	start := time.Now()
	if err := r.WriteFile(seq, path); err != nil {
		return err
	}
	var size int
	if fi, err := os.Stat(path); err == nil {
		size = int(fi.Size())
	}
	logger.LogRender(string(format), seq.Len(), size, time.Since(start))
	return nil
}

// OutputPath swaps the extension of input for the one of format
func OutputPath(input string, format Format) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + format.Extension()
}

// GetSupportedConversions returns a list of supported conversion paths
func GetSupportedConversions() []string {
	return []string{
		"notation -> midi",
		"notation -> wav",
		"midi -> notation",
		"midi -> wav",
	}
}
