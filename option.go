// Copyright 2021 Jonathan Amsterdam.

package commander

import "strings"

// Option declaration. An Option describes one flag or positional argument of
// a command. Options are values; every builder method returns a modified
// copy, so a declared Option can be shared between commands safely.

// Kind is the value type an Option accepts.
type Kind int

const (
	String Kind = iota // a single string (the default)
	Bool               // true when present
	Int
	Float64
	Duration // parsed with time.ParseDuration
	Time     // parsed with dateparse.ParseLocal
	Count    // increments each time the flag appears
	Strings  // repeatable flag, or the trailing positional rest
)

// Option is an immutable option declaration. Tokens beginning with a dash
// declare a flag (all tokens become aliases of one value); a single token
// without a dash declares a positional argument.
type Option struct {
	tokens   []string
	kind     Kind
	def      interface{}
	help     string
	metavar  string
	required bool
	group    []Option
}

// Opt declares an option with the given tokens, e.g.
//
//	commander.Opt("-v", "--verbose").OfKind(commander.Bool).Help("more detail")
func Opt(tokens ...string) Option {
	return Option{tokens: tokens}
}

// OfKind sets the value type accepted by the option.
func (o Option) OfKind(k Kind) Option { o.kind = k; return o }

// Default sets the value reported when the option is absent.
func (o Option) Default(v interface{}) Option { o.def = v; return o }

// Help sets the one-line usage text.
func (o Option) Help(s string) Option { o.help = s; return o }

// Metavar sets the value placeholder shown in usage text.
func (o Option) Metavar(s string) Option { o.metavar = s; return o }

// Required marks the option as mandatory.
func (o Option) Required() Option { o.required = true; return o }

// Group bundles options so a common set can be attached to many commands
// without repetition. The bundle expands in the given order.
func Group(opts ...Option) Option {
	return Option{group: opts}
}

// Name returns the canonical name of the option: the longest token with
// leading dashes stripped.
func (o Option) Name() string {
	name := ""
	for _, t := range o.tokens {
		if s := strings.TrimLeft(t, "-"); len(s) > len(name) {
			name = s
		}
	}
	return name
}

// positional reports whether the option is a positional argument.
func (o Option) positional() bool {
	return len(o.tokens) == 1 && !strings.HasPrefix(o.tokens[0], "-")
}

// flatten expands groups, preserving declaration order.
func flatten(opts []Option) []Option {
	var out []Option
	for _, o := range opts {
		if o.group != nil {
			out = append(out, flatten(o.group)...)
			continue
		}
		out = append(out, o)
	}
	return out
}
