package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/james-see/muco/pkg/config"
	"github.com/james-see/muco/pkg/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"test.mid", FormatMIDI},
		{"test.midi", FormatMIDI},
		{"test.WAV", FormatWAV},
		{"test.mcn", FormatNotation},
		{"test.txt", FormatNotation},
		{"test.syx", FormatUnknown},
		{"test", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := DetectFormat(tt.filename)
			if result != tt.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestDetectFormatFromContent(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"MIDI file", []byte("MThd\x00\x00\x00\x06"), FormatMIDI},
		{"WAV file", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), FormatWAV},
		{"Notation text", []byte("C4:quarter E4:half"), FormatNotation},
		{"Short data", []byte{0x00, 0x01}, FormatUnknown},
		{"Binary data", []byte{0xFF, 0xFE, 0xFD, 0xFC}, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectFormatFromContent(tt.data)
			if result != tt.expected {
				t.Errorf("DetectFormatFromContent() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNewFillsDefaults(t *testing.T) {
	conv := New(Options{Tempo: 90})
	opts := conv.Options()

	if opts.Tempo != 90 {
		t.Errorf("Tempo = %v, want 90", opts.Tempo)
	}
	if opts.TicksPerQuarter != 480 {
		t.Errorf("TicksPerQuarter = %d, want 480", opts.TicksPerQuarter)
	}
	if opts.Velocity != 64 {
		t.Errorf("Velocity = %d, want 64", opts.Velocity)
	}
	if opts.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", opts.SampleRate)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(&config.Config{Tempo: 100, TicksPerQuarter: 96, Velocity: 200, SampleRate: 8000})
	assert.Equal(t, 100.0, opts.Tempo)
	assert.Equal(t, uint16(96), opts.TicksPerQuarter)
	assert.Equal(t, uint8(64), opts.Velocity)
	assert.Equal(t, 8000, opts.SampleRate)

	assert.Equal(t, DefaultOptions(), OptionsFromConfig(nil))
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "melody.mcn")
	require.NoError(t, os.WriteFile(input, []byte("C4:quarter E4:quarter G4:half"), 0644))

	conv := New(DefaultOptions())
	midiPath := filepath.Join(dir, "melody.mid")
	require.NoError(t, conv.ConvertFile(input, midiPath))

	data, err := os.ReadFile(midiPath)
	require.NoError(t, err)
	assert.Equal(t, FormatMIDI, DetectFormatFromContent(data))

	backPath := filepath.Join(dir, "back.mcn")
	require.NoError(t, conv.ConvertFile(midiPath, backPath))
	back, err := os.ReadFile(backPath)
	require.NoError(t, err)
	assert.Equal(t, "C4:quarter E4:quarter G4:half\n", string(back))

	wavPath := filepath.Join(dir, "melody.wav")
	require.NoError(t, conv.ConvertFile(midiPath, wavPath))
	data, err = os.ReadFile(wavPath)
	require.NoError(t, err)
	assert.Equal(t, FormatWAV, DetectFormatFromContent(data))
}

func TestConvertFileErrors(t *testing.T) {
	dir := t.TempDir()
	conv := New(DefaultOptions())

	err := conv.ConvertFile(filepath.Join(dir, "missing.mcn"), filepath.Join(dir, "out.mid"))
	assert.Error(t, err)

	input := filepath.Join(dir, "melody.mcn")
	require.NoError(t, os.WriteFile(input, []byte("C4:quarter"), 0644))
	assert.Error(t, conv.ConvertFile(input, filepath.Join(dir, "out.xyz")))
	assert.Error(t, conv.ConvertFile(input, filepath.Join(dir, "out.txt")))

	wav := filepath.Join(dir, "in.wav")
	require.NoError(t, conv.ConvertFile(input, wav))
	assert.Error(t, conv.ConvertFile(wav, filepath.Join(dir, "out.mid")))

	bad := filepath.Join(dir, "bad.mcn")
	require.NoError(t, os.WriteFile(bad, []byte("H4:quarter"), 0644))
	assert.Error(t, conv.ConvertFile(bad, filepath.Join(dir, "out.mid")))
}

func TestRenderFile(t *testing.T) {
	seq, err := notation.ParseSequence("A4:whole")
	require.NoError(t, err)

	dir := t.TempDir()
	conv := New(DefaultOptions())
	require.NoError(t, conv.RenderFile(seq, filepath.Join(dir, "a.mid")))
	require.NoError(t, conv.RenderFile(seq, filepath.Join(dir, "a.wav")))
	assert.Error(t, conv.RenderFile(seq, filepath.Join(dir, "a.bin")))
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("songs/tune.mcn", FormatMIDI); got != "songs/tune.mid" {
		t.Errorf("OutputPath() = %q, want %q", got, "songs/tune.mid")
	}
	if got := OutputPath("tune", FormatWAV); got != "tune.wav" {
		t.Errorf("OutputPath() = %q, want %q", got, "tune.wav")
	}
}

func TestGetSupportedConversions(t *testing.T) {
	conversions := GetSupportedConversions()

	expected := []string{
		"notation -> midi",
		"notation -> wav",
		"midi -> notation",
		"midi -> wav",
	}

	if len(conversions) != len(expected) {
		t.Fatalf("GetSupportedConversions() returned %d conversions, want %d", len(conversions), len(expected))
	}
	for i, exp := range expected {
		if conversions[i] != exp {
			t.Errorf("conversions[%d] = %q, want %q", i, conversions[i], exp)
		}
	}
}

func TestConvertNamed(t *testing.T) {
	conv := New(DefaultOptions())

	res, err := conv.ConvertNamed([]byte("A4:half"), "uploads/tune.mcn", FormatMIDI)
	require.NoError(t, err)
	assert.Equal(t, "tune.mid", res.Filename)
	assert.Equal(t, FormatMIDI, res.Format)
	assert.Equal(t, FormatMIDI, DetectFormatFromContent(res.Data))

	// no extension: the content says notation
	res, err = conv.ConvertNamed([]byte("A4:half"), "", FormatWAV)
	require.NoError(t, err)
	assert.Equal(t, "converted.wav", res.Filename)

	_, err = conv.ConvertNamed(res.Data, "tune.wav", FormatMIDI)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"midi": FormatMIDI,
		".mid": FormatMIDI,
		"WAV":  FormatWAV,
		"mcn":  FormatNotation,
		"text": FormatNotation,
		"flac": FormatUnknown,
		"":     FormatUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseFormat(in), in)
	}
}

func TestRendererLookup(t *testing.T) {
	conv := New(DefaultOptions())
	r, ok := conv.Renderer(FormatMIDI)
	require.True(t, ok)
	assert.Same(t, conv.MIDI(), r)

	r, ok = conv.Renderer(FormatWAV)
	require.True(t, ok)
	assert.Same(t, conv.WAV(), r)

	_, ok = conv.Renderer(FormatNotation)
	assert.False(t, ok)
}
