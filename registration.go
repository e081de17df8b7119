// Copyright 2021 Jonathan Amsterdam.

package commander

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
)

// Code to discover command bindings and build the spec registry.

// Handler is the function invoked for a matched command.
type Handler func(ctx context.Context, opts *Values) error

// Binding declares one command handler. The host application builds an
// explicit ordered list of bindings; only names carrying the configured
// prefix (default "do_") are treated as commands.
type Binding struct {
	Name    string
	Handler Handler
	Doc     string
	Options []Option
}

// CommandSpec is the immutable record describing one discovered command.
type CommandSpec struct {
	name    string // qualified, underscore-joined
	handler Handler
	options []Option
	doc     string
}

// Name returns the qualified (underscore-joined) command name.
func (s *CommandSpec) Name() string { return s.name }

// Doc returns the one-line description.
func (s *CommandSpec) Doc() string { return s.doc }

// registry holds all discovered specs, keyed by qualified name.
type registry struct {
	specs map[string]*CommandSpec
}

// names returns the qualified names in lexicographic order.
func (r *registry) names() []string {
	names := make([]string, 0, len(r.specs))
	for n := range r.specs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// discover validates every binding carrying the prefix and registers a
// CommandSpec for it. Reserved names are never treated as commands. All
// registration problems across the pass are reported together.
func discover(bindings []Binding, prefix string, reserved map[string]bool) (*registry, error) {
	reg := &registry{specs: map[string]*CommandSpec{}}
	var errs *multierror.Error
	for _, b := range bindings {
		if !strings.HasPrefix(b.Name, prefix) || reserved[b.Name] {
			continue
		}
		name := strings.TrimPrefix(b.Name, prefix)
		if !validIdentifier(strings.ReplaceAll(name, "_", "")) {
			errs = multierror.Append(errs, &InvalidNameError{Name: name})
			continue
		}
		if b.Handler == nil {
			errs = multierror.Append(errs, fmt.Errorf("command %q: nil handler", name))
			continue
		}
		if _, ok := reg.specs[name]; ok {
			errs = multierror.Append(errs, &DuplicateCommandError{Name: name})
			continue
		}
		reg.specs[name] = &CommandSpec{
			name:    name,
			handler: b.Handler,
			options: flatten(b.Options),
			doc:     b.Doc,
		}
	}
	return reg, errs.ErrorOrNil()
}

// validIdentifier reports whether s is a non-empty identifier: a letter or
// underscore followed by letters, digits or underscores.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
