// Copyright 2021 Jonathan Amsterdam.

package commander

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/shlex"
)

// Code for configuring and running an application.

// DefaultPrefix marks a binding name as a command.
const DefaultPrefix = "do_"

// Commander holds an application's declared commands and configuration.
// A Commander is not safe for concurrent runs: the namespace tree is rebuilt
// without synchronization at the start of every run.
type Commander struct {
	name        string
	doc         string
	epilog      string
	version     string
	depth       int
	prefix      string
	reserved    map[string]bool
	defaultArgs []string
	bindings    []Binding
	reg         *registry
	output      io.Writer
}

// New returns a Commander for an application with the given name and
// one-line description.
func New(name, doc string) *Commander {
	return &Commander{
		name:        name,
		doc:         doc,
		prefix:      DefaultPrefix,
		reserved:    map[string]bool{"do_help": true, "do_version": true},
		defaultArgs: []string{"--help"},
		output:      os.Stdout,
	}
}

// Version sets the string printed for -v/--version.
func (c *Commander) Version(v string) *Commander { c.version = v; return c }

// Epilog sets text printed after the top-level usage.
func (c *Commander) Epilog(s string) *Commander { c.epilog = s; return c }

// Depth sets the hierarchy depth. 0 leaves every command at the top level;
// any value >= 1 splits qualified names on underscores, to arbitrary depth.
func (c *Commander) Depth(d int) *Commander { c.depth = d; return c }

// Prefix overrides the binding-name prefix that marks a command.
func (c *Commander) Prefix(p string) *Commander { c.prefix = p; return c }

// Reserve excludes binding names from command discovery.
func (c *Commander) Reserve(names ...string) *Commander {
	for _, n := range names {
		c.reserved[n] = true
	}
	return c
}

// DefaultArgs sets the arguments substituted when a run receives none.
// The default is "--help".
func (c *Commander) DefaultArgs(args ...string) *Commander {
	c.defaultArgs = args
	return c
}

// SetOutput directs usage and version output to w.
func (c *Commander) SetOutput(w io.Writer) *Commander { c.output = w; return c }

// Bind declares one command handler.
func (c *Commander) Bind(name string, h Handler, doc string, opts ...Option) *Commander {
	c.bindings = append(c.bindings, Binding{Name: name, Handler: h, Doc: doc, Options: opts})
	return c
}

// BindAll declares a list of command handlers.
func (c *Commander) BindAll(bindings []Binding) *Commander {
	c.bindings = append(c.bindings, bindings...)
	return c
}

// registryOnce discovers the bindings the first time it is needed. The
// registry is immutable afterward; only the tree is rebuilt per run.
func (c *Commander) registryOnce() (*registry, error) {
	if c.reg != nil {
		return c.reg, nil
	}
	reg, err := discover(c.bindings, c.prefix, c.reserved)
	if err != nil {
		return nil, err
	}
	c.reg = reg
	return reg, nil
}

// Run parses argv and dispatches the matched command. An empty argv is
// replaced by the configured default arguments. Help and version requests
// terminate the run with flag.ErrHelp and ErrVersion respectively.
func (c *Commander) Run(ctx context.Context, argv []string) error {
	reg, err := c.registryOnce()
	if err != nil {
		return err
	}
	t, err := buildTree(reg, c.depth)
	if err != nil {
		return err
	}
	if len(argv) == 0 {
		argv = c.defaultArgs
	}
	res, err := c.parse(t, argv)
	if err != nil {
		return err
	}
	return c.dispatch(ctx, res)
}

// RunLine splits line like a shell and runs the result.
func (c *Commander) RunLine(ctx context.Context, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	return c.Run(ctx, args)
}

// dispatch invokes the resolved handler. A handler error is wrapped in a
// CommandExecutionError carrying the command's qualified name, except for
// termination signals, which pass through untouched. Stopping at a node
// with no command prints that node's usage; only the root case is an error.
func (c *Commander) dispatch(ctx context.Context, res *Values) error {
	if res.spec != nil {
		if err := res.spec.handler(ctx, res); err != nil {
			if errors.Is(err, flag.ErrHelp) || errors.Is(err, ErrVersion) {
				return err
			}
			return &CommandExecutionError{Path: res.spec.name, Err: err}
		}
		return nil
	}
	c.printUsage(res.node)
	if res.node.parent == nil {
		return ErrNoCommand
	}
	return nil
}

// Main runs the application and returns its exit code: 0 for success, help
// and version; 1 for a failed handler; 2 for anything wrong with the
// invocation itself.
func (c *Commander) Main(ctx context.Context, argv []string) int {
	err := c.Run(ctx, argv)
	if err == nil {
		return 0
	}
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, ErrVersion) {
		return 0
	}
	fmt.Fprintln(os.Stderr, err)
	var cerr *CommandExecutionError
	if errors.As(err, &cerr) {
		return 1
	}
	return 2
}
