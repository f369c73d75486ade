package main

import (
	"fmt"
	"strings"

	"github.com/james-see/muco/pkg/theory"
	"github.com/spf13/cobra"
)

func modeArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return "major"
}

func runPitch(cmd *cobra.Command, args []string) error {
	p, err := theory.ParsePitch(args[0])
	if err != nil {
		return err
	}
	midi, err := p.MIDINumber()
	if err != nil {
		return err
	}
	freq, err := p.Frequency()
	if err != nil {
		return err
	}
	all := theory.Names(theory.Default().Enharmonics.AllEnharmonics(p.Class))
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Pitch:       %s\n", p)
	fmt.Fprintf(out, "MIDI:        %d\n", midi)
	fmt.Fprintf(out, "Frequency:   %.2f Hz\n", freq)
	fmt.Fprintf(out, "Spellings:   %s\n", strings.Join(all, " "))
	return nil
}

func runEnharmonic(cmd *cobra.Command, args []string) error {
	pc, err := theory.ParsePitchClass(args[0])
	if err != nil {
		return err
	}
	er := theory.Default().Enharmonics
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (all spellings: %s)\n",
		pc, er.EnharmonicOf(pc), strings.Join(theory.Names(er.AllEnharmonics(pc)), " "))
	return nil
}

func runInterval(cmd *cobra.Command, args []string) error {
	th := theory.Default()
	n, err := th.IntervalBetween(args[0], args[1])
	if err != nil {
		return err
	}
	low, _ := theory.ParsePitch(args[0])
	high, _ := theory.ParsePitch(args[1])
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d semitones, %s)\n", n, n.Semitones(), th.Intervals.Direction(low, high))
	return nil
}

func runTranspose(cmd *cobra.Command, args []string) error {
	dir := theory.Ascending
	if descending {
		dir = theory.Descending
	}
	out, err := theory.Default().Transpose(args[0], args[1], dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runInvert(cmd *cobra.Command, args []string) error {
	low, err := theory.ParsePitch(args[0])
	if err != nil {
		return err
	}
	high, err := theory.ParsePitch(args[1])
	if err != nil {
		return err
	}
	ie := theory.Default().Intervals
	name, err := ie.Name(low, high)
	if err != nil {
		return err
	}
	inv, err := ie.Invert(low, high)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s inverts to %s\n", name, inv)
	return nil
}

func runCircle(cmd *cobra.Command, args []string) error {
	circle := theory.Default().Circle
	majors, minors := circle.Majors(), circle.RelativeMinors()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-4s %-7s %s\n", "pos", "major", "minor")
	for i := range majors {
		fmt.Fprintf(out, "%-4d %-7s %s\n", i, majors[i], minors[i])
	}
	return nil
}

func runKeySignature(cmd *cobra.Command, args []string) error {
	th := theory.Default()
	ks, err := th.KeySignatureOf(args[0], modeArg(args, 1))
	if err != nil {
		return err
	}
	notes := theory.Names(th.Keys.SignatureNotes(ks))
	if len(notes) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: no sharps or flats\n", ks.Tonic, ks.Mode)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (%s)\n", ks.Tonic, ks.Mode, ks, strings.Join(notes, " "))
	return nil
}

func runChord(cmd *cobra.Command, args []string) error {
	notes, err := theory.Default().ChordOf(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(theory.Names(notes), " "))
	return nil
}

func runScale(cmd *cobra.Command, args []string) error {
	notes, err := theory.Default().ScaleOf(args[0], modeArg(args, 1))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(theory.Names(notes), " "))
	return nil
}
