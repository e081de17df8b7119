// Copyright 2021 Jonathan Amsterdam.

package commander

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Bridge to the flag engine. Every node on the invocation path materializes
// its own flag.FlagSet; each option declaration becomes one typed value
// bound to all of its dashed tokens.

type optionValue struct {
	opt   Option
	set   bool
	val   interface{}
	count int
	list  []string
}

func (v *optionValue) String() string {
	if v.opt.def != nil {
		return fmt.Sprint(v.opt.def)
	}
	return ""
}

func (v *optionValue) IsBoolFlag() bool {
	return v.opt.kind == Bool || v.opt.kind == Count
}

func (v *optionValue) Set(s string) error {
	switch v.opt.kind {
	case Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.val = b
	case Count:
		v.count++
		v.val = v.count
	case Int:
		i, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		v.val = i
	case Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		v.val = f
	case Duration:
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.val = d
	case Time:
		t, err := dateparse.ParseLocal(s)
		if err != nil {
			return err
		}
		v.val = t
	case Strings:
		v.list = append(v.list, s)
		v.val = v.list
	default:
		v.val = s
	}
	v.set = true
	return nil
}

// Values is the parsed-options record handed to a command handler.
type Values struct {
	spec *CommandSpec
	node *node
	vals map[string]*optionValue
	args []string
}

func (vs *Values) lookup(name string) *optionValue {
	return vs.vals[strings.TrimLeft(name, "-")]
}

// Bool reports the value of a Bool option, or its default when absent.
func (vs *Values) Bool(name string) bool {
	v := vs.lookup(name)
	if v == nil {
		return false
	}
	if !v.set {
		b, _ := v.opt.def.(bool)
		return b
	}
	b, _ := v.val.(bool)
	return b
}

func (vs *Values) String(name string) string {
	v := vs.lookup(name)
	if v == nil {
		return ""
	}
	if !v.set {
		s, _ := v.opt.def.(string)
		return s
	}
	s, _ := v.val.(string)
	return s
}

func (vs *Values) Int(name string) int {
	v := vs.lookup(name)
	if v == nil {
		return 0
	}
	if !v.set {
		i, _ := v.opt.def.(int)
		return i
	}
	i, _ := v.val.(int)
	return i
}

func (vs *Values) Float64(name string) float64 {
	v := vs.lookup(name)
	if v == nil {
		return 0
	}
	if !v.set {
		f, _ := v.opt.def.(float64)
		return f
	}
	f, _ := v.val.(float64)
	return f
}

func (vs *Values) Duration(name string) time.Duration {
	v := vs.lookup(name)
	if v == nil {
		return 0
	}
	if !v.set {
		d, _ := v.opt.def.(time.Duration)
		return d
	}
	d, _ := v.val.(time.Duration)
	return d
}

func (vs *Values) Time(name string) time.Time {
	v := vs.lookup(name)
	if v == nil {
		return time.Time{}
	}
	if !v.set {
		t, _ := v.opt.def.(time.Time)
		return t
	}
	t, _ := v.val.(time.Time)
	return t
}

// Count reports how many times a Count option appeared, or its default when
// absent.
func (vs *Values) Count(name string) int {
	v := vs.lookup(name)
	if v == nil {
		return 0
	}
	if !v.set {
		n, _ := v.opt.def.(int)
		return n
	}
	return v.count
}

func (vs *Values) Strings(name string) []string {
	v := vs.lookup(name)
	if v == nil {
		return nil
	}
	if !v.set {
		ss, _ := v.opt.def.([]string)
		return ss
	}
	return v.list
}

// Path returns the qualified name of the matched command, or the namespace
// path when the invocation stopped at an interior node.
func (vs *Values) Path() string {
	if vs.spec != nil {
		return vs.spec.name
	}
	if vs.node != nil {
		return vs.node.qualified()
	}
	return ""
}

// Args returns the raw arguments left after flag parsing at the matched
// node, before positional binding.
func (vs *Values) Args() []string { return vs.args }

// optionsFor returns the options the engine registers at n: the spec's own
// declarations, plus the version flag at the root when one is configured.
func (c *Commander) optionsFor(n *node) []Option {
	var opts []Option
	if n.parent == nil && c.version != "" {
		opts = append(opts, Opt("-v", "--version").OfKind(Bool).Help("print version and exit"))
	}
	if n.spec != nil {
		opts = append(opts, n.spec.options...)
	}
	return opts
}

// materialize builds the flag set for one node.
func (c *Commander) materialize(n *node) (*flag.FlagSet, map[string]*optionValue, []*optionValue, error) {
	name := n.segment
	if n.parent == nil {
		name = c.name
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.output)
	fs.Usage = func() { c.printUsage(n) }

	vals := map[string]*optionValue{}
	var positionals []*optionValue
	for _, o := range c.optionsFor(n) {
		if o.Name() == "" {
			return nil, nil, nil, &ParserConstructionError{Name: name, Err: fmt.Errorf("option with no tokens")}
		}
		v := &optionValue{opt: o}
		if o.positional() {
			positionals = append(positionals, v)
			vals[o.Name()] = v
			continue
		}
		for _, tok := range o.tokens {
			if !strings.HasPrefix(tok, "-") {
				return nil, nil, nil, &ParserConstructionError{
					Name: name,
					Err:  fmt.Errorf("option %q mixes flag and positional tokens", o.Name()),
				}
			}
			fname := strings.TrimLeft(tok, "-")
			if fname == "" {
				return nil, nil, nil, &ParserConstructionError{Name: name, Err: fmt.Errorf("empty flag token")}
			}
			if fs.Lookup(fname) != nil {
				return nil, nil, nil, &ParserConstructionError{
					Name: name,
					Err:  fmt.Errorf("duplicate option token %q", tok),
				}
			}
			fs.Var(v, fname, o.help)
			vals[fname] = v
		}
	}
	// A variadic positional consumes the rest, so it must come last.
	for i, v := range positionals {
		if v.opt.kind == Strings && i != len(positionals)-1 {
			return nil, nil, nil, &ParserConstructionError{
				Name: name,
				Err:  fmt.Errorf("positional %q is variadic but not last", v.opt.Name()),
			}
		}
	}
	return fs, vals, positionals, nil
}

// parse walks the tree, consuming one path segment per level and letting
// each node's flag set bind its own options. It returns the parse result,
// or a termination signal (flag.ErrHelp, ErrVersion) untouched.
func (c *Commander) parse(t *tree, argv []string) (*Values, error) {
	res := &Values{vals: map[string]*optionValue{}}
	n := t.root
	args := argv
	for {
		fs, vals, positionals, err := c.materialize(n)
		if err != nil {
			return nil, err
		}
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		for k, v := range vals {
			res.vals[k] = v
		}
		if n.parent == nil && c.version != "" && res.vals["version"].set {
			fmt.Fprintf(c.output, "%s %s\n", c.name, c.version)
			return nil, ErrVersion
		}

		rest := fs.Args()
		if len(rest) > 0 {
			if child := n.child(rest[0]); child != nil {
				n = child
				args = rest[1:]
				continue
			}
			if n.spec == nil {
				c.printUsage(n)
				return nil, fmt.Errorf("unknown command %q: %w", rest[0], ErrNoCommand)
			}
		}

		if n.spec != nil {
			if err := checkRequired(res.vals); err != nil {
				c.printUsage(n)
				return nil, err
			}
			if err := bindPositionals(positionals, rest); err != nil {
				c.printUsage(n)
				return nil, err
			}
		}
		res.spec = n.spec
		res.node = n
		res.args = rest
		return res, nil
	}
}

func checkRequired(vals map[string]*optionValue) error {
	for _, v := range vals {
		if v.opt.required && !v.opt.positional() && !v.set {
			return fmt.Errorf("missing required option %q", v.opt.Name())
		}
	}
	return nil
}

// bindPositionals assigns the remaining arguments to positional options in
// declaration order. A Strings positional consumes the rest.
func bindPositionals(positionals []*optionValue, args []string) error {
	i := 0
	for _, v := range positionals {
		if v.opt.kind == Strings {
			if v.opt.required && i >= len(args) {
				return fmt.Errorf("missing required argument %q", v.opt.Name())
			}
			for ; i < len(args); i++ {
				if err := v.Set(args[i]); err != nil {
					return fmt.Errorf("argument %q: %v", v.opt.Name(), err)
				}
			}
			continue
		}
		if i >= len(args) {
			if v.opt.required {
				return fmt.Errorf("missing required argument %q", v.opt.Name())
			}
			continue
		}
		if err := v.Set(args[i]); err != nil {
			return fmt.Errorf("argument %q: %v", v.opt.Name(), err)
		}
		i++
	}
	if i < len(args) {
		return fmt.Errorf("too many arguments: %q", args[i])
	}
	return nil
}
