// Command beep plays sequences of sine tones on the default audio device.
//
// Usage:
//
//	beep                                  # 440 Hz for 200 ms
//	beep -f 880 -l 100 -r 3 -d 50         # three short beeps
//	beep -f 440 -n -f 660 -n -f 880       # a rising triad
//	beep -o beep.wav -f 1000 -l 500       # render to a WAV file
//	tail -f log | grep --line-buffered ERROR | beep -s
//
// Each -n/--new starts a new tone; options before it apply to the previous
// one. Stream settings can also be given as BEEP_SAMPLE_RATE, BEEP_CHANNELS,
// BEEP_BUFFER_MS, BEEP_LOG_LEVEL and BEEP_OUTPUT.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tphakala/go-beep/internal/cli"
	"github.com/tphakala/go-beep/internal/config"
	"github.com/tphakala/go-beep/internal/logging"
)

// errHelp makes -h exit non-zero after printing usage.
var errHelp = errors.New("help requested")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run reports its own errors; the returned error only selects the exit code.
func run(args []string, stdin *os.File, stdout, stderr io.Writer) error {
	opts, err := cli.Parse(progName, args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		cli.Usage(stderr, progName)
		return err
	}
	if opts.Help {
		cli.Usage(stderr, progName)
		return errHelp
	}
	if opts.Version {
		fmt.Fprintf(stdout, "%s %s\n", progName, version)
		return nil
	}

	cfg, err := config.Load(opts.Flags)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		cli.Usage(stderr, progName)
		return err
	}
	if cfg.Output != "" && opts.Stdin != cli.StdinOff {
		err := fmt.Errorf("%w: --output cannot be combined with -s or -c", cli.ErrUsage)
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Verbose: opts.Verbose})
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range opts.Warnings {
		logger.Warn(w)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reporter := logging.NewReporter(logger)
	defer reporter.Close()

	s := &session{
		opts:     opts,
		cfg:      cfg,
		logger:   logger,
		reporter: reporter,
		stdin:    stdin,
		stdout:   stdout,
	}

	switch {
	case cfg.Output != "":
		err = s.renderWAV()
	case opts.Stdin != cli.StdinOff:
		err = s.triggered(ctx)
	default:
		err = s.playOnce(ctx)
	}

	if errors.Is(err, context.Canceled) {
		logger.Debug("interrupted")
		return nil
	}
	if err != nil {
		logger.Error("beep failed", zap.Error(err))
	}
	return err
}
