// Package main is the entry point for the muco CLI
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/james-see/muco/pkg/api"
	"github.com/james-see/muco/pkg/config"
	"github.com/james-see/muco/pkg/converter"
	"github.com/james-see/muco/pkg/logger"
	"github.com/james-see/muco/pkg/notation"
	"github.com/james-see/muco/pkg/player"
	"github.com/james-see/muco/pkg/theory"
	"github.com/james-see/muco/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfg *config.Config

	outputFile string
	notesText  string
	tempo      float64
	sampleRate int
	descending bool
	serverPort int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "muco",
	Short: "Music theory calculator and note sequence renderer",
	Long: `muco spells chords, scales and key signatures, names and transposes
intervals, and renders note sequences to MIDI files or WAV audio.

Notes are written in scientific pitch notation (C4, F#3, Bb5); sequences
are "pitch:duration" tokens such as "C4:quarter E4:eighth G4:half".

Examples:
  muco chord Bb4 minor7
  muco scale F# major
  muco keysig Eb minor
  muco interval C4 G4
  muco transpose C4 P5 --down
  muco render --notes "C4 E4 G4:half" -o arpeggio.wav
  muco render melody.mcn -o melody.mid
  muco play melody.mid
  muco tui
  muco serve --port 8080`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var pitchCmd = &cobra.Command{
	Use:   "pitch <note>",
	Short: "Show MIDI number, frequency and spellings of a pitch",
	Args:  cobra.ExactArgs(1),
	RunE:  runPitch,
}

var enharmonicCmd = &cobra.Command{
	Use:   "enharmonic <class>",
	Short: "Respell a pitch class",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnharmonic,
}

var intervalCmd = &cobra.Command{
	Use:   "interval <low> <high>",
	Short: "Name the interval between two pitches",
	Args:  cobra.ExactArgs(2),
	RunE:  runInterval,
}

var transposeCmd = &cobra.Command{
	Use:   "transpose <note> <interval>",
	Short: "Transpose a pitch or pitch class by an interval",
	Long: `Transpose a note by an interval name ("perfect fifth"), shorthand (P5, m3, TT)
or semitone count. A note with an octave (Eb4) gives a pitch, a bare class
(Eb) gives a class.`,
	Args: cobra.ExactArgs(2),
	RunE: runTranspose,
}

var invertCmd = &cobra.Command{
	Use:   "invert <low> <high>",
	Short: "Invert the interval between two pitches",
	Args:  cobra.ExactArgs(2),
	RunE:  runInvert,
}

var circleCmd = &cobra.Command{
	Use:   "circle",
	Short: "Print the circle of fifths with relative minors",
	Args:  cobra.NoArgs,
	RunE:  runCircle,
}

var keysigCmd = &cobra.Command{
	Use:   "keysig <tonic> [major|minor]",
	Short: "Show the key signature of a key",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runKeySignature,
}

var chordCmd = &cobra.Command{
	Use:   "chord <root> <type>",
	Short: "Spell a chord",
	Long:  `Spell a chord. Types: major, minor, diminished, augmented, major7, minor7, dominant7, half-diminished7, sus2, sus4.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runChord,
}

var scaleCmd = &cobra.Command{
	Use:   "scale <root> [major|minor]",
	Short: "Spell a major or natural minor scale",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runScale,
}

var renderCmd = &cobra.Command{
	Use:   "render [input]",
	Short: "Render notation or MIDI to a MIDI, WAV or notation file",
	Long: `Render a note sequence. The input is a notation file (.mcn), a MIDI file,
or inline notation given with --notes. The output format follows the
extension of --output (.mid, .wav or .mcn).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Auto-detect and convert between formats",
	Long:  `Automatically detects input format and converts to the output format based on file extension.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var playCmd = &cobra.Command{
	Use:   "play [input]",
	Short: "Render a sequence to audio and play it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlay,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().Float64VarP(&tempo, "tempo", "t", config.DefaultTempo, "Tempo in quarter notes per minute")
	rootCmd.PersistentFlags().IntVar(&sampleRate, "sample-rate", config.DefaultSampleRate, "WAV sample rate in Hz")

	transposeCmd.Flags().BoolVar(&descending, "down", false, "Transpose downwards")

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	renderCmd.Flags().StringVarP(&notesText, "notes", "n", "", `Inline notation, e.g. "C4:quarter E4:half"`)
	_ = renderCmd.MarkFlagRequired("output")

	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	_ = convertCmd.MarkFlagRequired("output")

	playCmd.Flags().StringVarP(&notesText, "notes", "n", "", "Inline notation to play")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", config.DefaultPort, "Server port")

	rootCmd.AddCommand(pitchCmd)
	rootCmd.AddCommand(enharmonicCmd)
	rootCmd.AddCommand(intervalCmd)
	rootCmd.AddCommand(transposeCmd)
	rootCmd.AddCommand(invertCmd)
	rootCmd.AddCommand(circleCmd)
	rootCmd.AddCommand(keysigCmd)
	rootCmd.AddCommand(chordCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads .env and the environment, then applies flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to read .env file", logger.Fields{"error": err.Error()})
	}
	cfg = config.Load()

	flags := cmd.Flags()
	if flags.Changed("tempo") {
		if tempo <= 0 {
			return fmt.Errorf("tempo must be positive, got %v", tempo)
		}
		cfg.Tempo = tempo
	}
	if flags.Changed("sample-rate") {
		if sampleRate <= 0 {
			return fmt.Errorf("sample rate must be positive, got %d", sampleRate)
		}
		cfg.SampleRate = sampleRate
	}
	if flags.Changed("port") {
		cfg.Port = serverPort
	}
	return nil
}

func newConverter() *converter.Converter {
	return converter.New(converter.OptionsFromConfig(cfg))
}

// loadSequence reads the sequence from --notes or from a notation or MIDI
// file.
func loadSequence(conv *converter.Converter, args []string) (*notation.Sequence, error) {
	if notesText != "" {
		return notation.ParseSequence(notesText)
	}
	if len(args) == 0 {
		return nil, errors.New("give an input file or --notes")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	format := converter.DetectFormat(args[0])
	if format == converter.FormatUnknown {
		format = converter.DetectFormatFromContent(data)
	}
	return conv.ReadSequence(data, format)
}

func runRender(cmd *cobra.Command, args []string) error {
	conv := newConverter()
	seq, err := loadSequence(conv, args)
	if err != nil {
		return err
	}
	if err := conv.RenderFile(seq, outputFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d notes -> %s\n", seq.Len(), outputFile)
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	fmt.Fprintf(cmd.OutOrStdout(), "Converting %s -> %s\n", input, outputFile)
	if err := newConverter().ConvertFile(input, outputFile); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Conversion complete!")
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	conv := newConverter()
	seq, err := loadSequence(conv, args)
	if err != nil {
		return err
	}
	data, err := conv.Render(seq, converter.FormatWAV)
	if err != nil {
		return err
	}
	p, err := player.New(cfg.Player)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Playing %d notes at %v BPM...\n", seq.Len(), cfg.Tempo)
	return p.Play(cmd.Context(), data)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(theory.Default(), converter.OptionsFromConfig(cfg))
}

func runServe(cmd *cobra.Command, args []string) error {
	flush, err := api.InitSentry(cfg, version)
	if err != nil {
		logger.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
	}
	defer flush()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting API server on port %d...\n", cfg.Port)
	return api.StartServer(cfg)
}
