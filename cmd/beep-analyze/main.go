// Command beep-analyze inspects a WAV file rendered by beep.
//
// Usage:
//
//	beep-analyze beep.wav
//	beep-analyze --threshold 0.001 --ref-freq 880 melody.wav
//
// It prints the file duration, how long the signal is audible, the dominant
// frequency, the peak level, and the largest sample-to-sample step compared
// with what a clean sine of the reference frequency can produce. A step well
// above that bound is an audible click.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/tphakala/go-beep/internal/spectrum"
	"github.com/tphakala/go-beep/internal/wavfile"
)

const (
	defaultThreshold = 0.01 // magnitude treated as audible
	clickMargin      = 1.05 // tolerated overshoot of the sine step bound
	quantSlack       = 2.0 / 32767
)

var errClick = errors.New("discontinuity detected")

// report is the result of analyzing one clip.
type report struct {
	Path         string
	SampleRate   int
	Channels     int
	BitDepth     int
	Duration     float64 // seconds
	Active       float64 // seconds above threshold
	Dominant     float64 // Hz, 0 when the clip is too short
	Peak         float64
	MaxStep      float64
	MaxStepAt    float64 // seconds
	RefFreq      float64
	StepBound    float64
	Discontinued bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, w io.Writer) error {
	fs := pflag.NewFlagSet("beep-analyze", pflag.ContinueOnError)
	threshold := fs.Float64("threshold", defaultThreshold, "magnitude treated as audible")
	refFreq := fs.Float64("ref-freq", 0, "reference frequency for the click check (default: dominant frequency)")
	strict := fs.Bool("strict", false, "exit non-zero when a click is detected")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: beep-analyze [options] input.wav\n\nOptions:\n%s", fs.FlagUsages())
		return fmt.Errorf("expected one input file, got %d", fs.NArg())
	}

	clip, err := wavfile.Read(fs.Arg(0))
	if err != nil {
		return err
	}

	r := analyze(clip, *threshold, *refFreq)
	r.Path = fs.Arg(0)
	printReport(w, r)

	if *strict && r.Discontinued {
		return errClick
	}
	return nil
}

func analyze(clip *wavfile.Clip, threshold, refFreq float64) report {
	rate := float64(clip.SampleRate)
	r := report{
		SampleRate: clip.SampleRate,
		Channels:   clip.Channels,
		BitDepth:   clip.BitDepth,
		Duration:   clip.Duration().Seconds(),
		Active:     spectrum.ActiveDuration(clip.Samples, rate, threshold),
		Peak:       spectrum.Peak(clip.Samples),
	}

	if f, err := spectrum.DominantFrequency(clip.Samples, rate); err == nil {
		r.Dominant = f
	}

	step, at := spectrum.MaxStep(clip.Samples)
	r.MaxStep = step
	if rate > 0 {
		r.MaxStepAt = float64(at) / rate
	}

	r.RefFreq = refFreq
	if r.RefFreq <= 0 {
		r.RefFreq = r.Dominant
	}
	if r.RefFreq > 0 && rate > 0 {
		r.StepBound = spectrum.MaxSineStep(r.RefFreq, rate)
		r.Discontinued = r.MaxStep > r.StepBound*clickMargin+quantSlack
	}
	return r
}

func printReport(w io.Writer, r report) {
	fmt.Fprintf(w, "=== %s ===\n", r.Path)
	fmt.Fprintf(w, "Format:      %d Hz, %d ch, %d-bit\n", r.SampleRate, r.Channels, r.BitDepth)
	fmt.Fprintf(w, "Duration:    %.1f ms\n", r.Duration*1000)
	fmt.Fprintf(w, "Active:      %.1f ms\n", r.Active*1000)
	if r.Dominant > 0 {
		fmt.Fprintf(w, "Dominant:    %.1f Hz\n", r.Dominant)
	} else {
		fmt.Fprintf(w, "Dominant:    n/a\n")
	}
	fmt.Fprintf(w, "Peak:        %.4f\n", r.Peak)
	fmt.Fprintf(w, "Max step:    %.4f at %.2f ms\n", r.MaxStep, r.MaxStepAt*1000)
	if r.StepBound > 0 {
		fmt.Fprintf(w, "Sine bound:  %.4f (%.1f Hz)\n", r.StepBound, r.RefFreq)
		if r.Discontinued {
			fmt.Fprintln(w, "Result:      CLICK")
		} else {
			fmt.Fprintln(w, "Result:      clean")
		}
	}
}
