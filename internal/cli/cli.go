// Package cli turns beep command-line arguments into an ordered list of tone
// requests. Options apply to the current group; -n/--new starts a new one.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/tphakala/go-beep/internal/tone"
)

// ErrUsage wraps every error caused by malformed arguments.
var ErrUsage = errors.New("usage error")

// StdinMode selects whether playback is triggered by standard input.
type StdinMode int

const (
	// StdinOff plays the sequence once.
	StdinOff StdinMode = iota
	// StdinLine plays the sequence after each line of input.
	StdinLine
	// StdinChar plays the sequence after each character of input.
	StdinChar
)

// Options is the result of parsing a command line.
type Options struct {
	Groups  []tone.Request
	Stdin   StdinMode
	Verbose bool
	Help    bool
	Version bool

	// Warnings are non-fatal remarks about the arguments.
	Warnings []string

	// Flags is the parsed flag set, for binding stream settings.
	Flags *pflag.FlagSet
}

// Queue returns a fresh queue of copies of the parsed groups. Each call is
// independent, so a sequence can be replayed.
func (o *Options) Queue() *tone.Queue {
	q := tone.NewQueue()
	for i := range o.Groups {
		r := o.Groups[i]
		q.Append(&r)
	}
	return q
}

// group is one --new-delimited set of options. The frequency stays unset
// until the group is closed so that defaults never mask a repeated -f.
type group struct {
	frequency *float64
	req       tone.Request
}

type builder struct {
	groups   []*group
	stdin    StdinMode
	help     bool
	version  bool
	warnings []string
}

func newBuilder() *builder {
	b := &builder{}
	b.groups = append(b.groups, &group{req: *tone.NewRequest()})
	return b
}

func (b *builder) current() *group {
	return b.groups[len(b.groups)-1]
}

func (b *builder) newGroup() {
	next := &group{req: *tone.NewRequest()}
	next.req.Verbose = b.current().req.Verbose
	b.groups = append(b.groups, next)
}

func (b *builder) warn(msg string) {
	b.warnings = append(b.warnings, msg)
}

func (b *builder) resolve() []tone.Request {
	out := make([]tone.Request, len(b.groups))
	for i, g := range b.groups {
		out[i] = g.req
		out[i].Frequency = tone.DefaultFrequency
		if g.frequency != nil {
			out[i].Frequency = *g.frequency
		}
	}
	return out
}

// Stream flag defaults. The authoritative defaults live in config; these
// only appear in usage output.
const (
	defaultSampleRate = 48000
	defaultChannels   = 2
	defaultBufferMs   = 50
)

func newFlagSet(name string, b *builder) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.VarP(frequencyValue{b}, "frequency", "f", "tone frequency in Hz")
	fs.VarP(msValue{b, "ms", func(g *group, n int) { g.req.Length = n }},
		"length", "l", "tone length in milliseconds")
	fs.VarP(msValue{b, "count", func(g *group, n int) { g.req.Repeats = n }},
		"repeats", "r", "number of repetitions")
	fs.VarP(msValue{b, "ms", func(g *group, n int) {
		g.req.Delay = n
		g.req.DelayAfterLast = false
	}}, "delay", "d", "delay between repetitions, none after the last")
	fs.VarP(msValue{b, "ms", func(g *group, n int) {
		g.req.Delay = n
		g.req.DelayAfterLast = true
	}}, "delay-all", "D", "delay between repetitions and after the last")

	noArg := func(f *pflag.Flag) { f.NoOptDefVal = "true" }
	noArg(fs.VarPF(switchValue{func() { b.stdin = StdinLine }}, "stdin-line", "s",
		"beep after each line of standard input, echoing it"))
	noArg(fs.VarPF(switchValue{func() { b.stdin = StdinChar }}, "stdin-char", "c",
		"beep after each character of standard input, echoing it"))
	noArg(fs.VarPF(switchValue{b.newGroup}, "new", "n", "start a new tone"))

	verbose := func() { b.current().req.Verbose = true }
	noArg(fs.VarPF(switchValue{verbose}, "verbose", "", "report each completed tone"))
	noArg(fs.VarPF(switchValue{verbose}, "debug", "", "same as --verbose"))

	noArg(fs.VarPF(switchValue{func() { b.help = true }}, "help", "h", "show usage"))
	noArg(fs.VarPF(switchValue{func() { b.version = true }}, "version", "V", "print version"))
	hidden := fs.VarPF(switchValue{func() { b.version = true }}, "print-version", "v", "print version")
	noArg(hidden)
	hidden.Hidden = true

	fs.StringP("output", "o", "", "render to this WAV file instead of the speaker")
	fs.Int("sample-rate", defaultSampleRate, "output sample rate in Hz")
	fs.Int("channels", defaultChannels, "output channel count")
	fs.Int("buffer-ms", defaultBufferMs, "audio device buffer in milliseconds")
	fs.String("log-level", "info", "log level: debug, info, warn, error")

	return fs
}

// Parse parses args (without the program name).
func Parse(name string, args []string) (*Options, error) {
	b := newBuilder()
	fs := newFlagSet(name, b)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	opts := &Options{
		Groups:   b.resolve(),
		Stdin:    b.stdin,
		Help:     b.help,
		Version:  b.version,
		Warnings: b.warnings,
		Flags:    fs,
	}
	for _, g := range opts.Groups {
		opts.Verbose = opts.Verbose || g.Verbose
	}
	return opts, nil
}

// Usage writes the command synopsis and option list to w.
func Usage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage:\n%s [-f freq] [-l length] [-r reps] [-d delay] [-D delay] [-s] [-c]\n", name)
	fmt.Fprintf(w, "%s [Options...] [-n] [--new] [Options...] ...\n", name)
	fmt.Fprintf(w, "%s [-h] [--help]\n", name)
	fmt.Fprintf(w, "%s [-v] [-V] [--version]\n\n", name)

	fs := newFlagSet(name, newBuilder())
	fmt.Fprint(w, fs.FlagUsages())
}
