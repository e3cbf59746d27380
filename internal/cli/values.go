package cli

import (
	"fmt"
	"strconv"

	"github.com/tphakala/go-beep/internal/tone"
)

// The tone options are pflag.Values that write into the builder's current
// group. pflag calls Set in command-line order, which is what makes --new
// split the arguments into groups.

type frequencyValue struct{ b *builder }

func (v frequencyValue) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !(f > 0 && f < tone.MaxFrequency) {
		return fmt.Errorf("frequency must be a number in (0, %g)", tone.MaxFrequency)
	}
	g := v.b.current()
	if g.frequency != nil {
		v.b.warn("multiple -f values given, only last one is used")
	}
	g.frequency = &f
	return nil
}

func (v frequencyValue) String() string { return "" }
func (v frequencyValue) Type() string   { return "hz" }

// msValue parses a non-negative integer and hands it to apply.
type msValue struct {
	b        *builder
	typeName string
	apply    func(g *group, n int)
}

func (v msValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	v.apply(v.b.current(), n)
	return nil
}

func (v msValue) String() string { return "" }
func (v msValue) Type() string   { return v.typeName }

// switchValue is a no-argument option that runs fire when given.
type switchValue struct {
	fire func()
}

func (v switchValue) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		v.fire()
	}
	return nil
}

func (v switchValue) String() string { return "false" }
func (v switchValue) Type() string   { return "bool" }
