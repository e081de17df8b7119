// Copyright 2021 Jonathan Amsterdam.

package commander

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Usage rendering.

func (c *Commander) printUsage(n *node) {
	w := c.output
	width := outputWidth()

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", c.usageHeader(n))

	doc := n.doc
	if n.parent == nil {
		doc = c.doc
	}
	if doc != "" {
		fmt.Fprintln(w)
		for _, line := range wrap(doc, width-2) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	if n.children.Len() > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Commands:")
		nameWidth := 0
		for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
			if len(pair.Key) > nameWidth {
				nameWidth = len(pair.Key)
			}
		}
		for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(w, "  %-*s  %s\n", nameWidth, pair.Key, pair.Value.doc)
		}
	}

	var flagLines, argLines [][2]string
	for _, o := range c.optionsFor(n) {
		if o.positional() {
			argLines = append(argLines, [2]string{o.displayValue(), o.help})
			continue
		}
		flagLines = append(flagLines, [2]string{o.displayFlags(), o.help})
	}
	printColumns(w, "Arguments:", argLines)
	printColumns(w, "Flags:", flagLines)

	if n.parent == nil && c.epilog != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, c.epilog)
	}
}

func (c *Commander) usageHeader(n *node) string {
	var b strings.Builder
	b.WriteString(c.name)
	for _, seg := range n.pathSegments() {
		b.WriteString(" " + seg)
	}
	hasFlags := false
	for _, o := range c.optionsFor(n) {
		if o.positional() {
			continue
		}
		hasFlags = true
		break
	}
	if hasFlags {
		b.WriteString(" [flags]")
	}
	if n.children.Len() > 0 {
		b.WriteString(" <command>")
	}
	for _, o := range c.optionsFor(n) {
		if o.positional() {
			b.WriteString(" " + o.displayValue())
			if o.kind == Strings {
				b.WriteString("...")
			}
		}
	}
	return b.String()
}

// displayFlags renders the dashed tokens plus the value placeholder,
// e.g. "-l, --limit N".
func (o Option) displayFlags() string {
	s := strings.Join(o.tokens, ", ")
	if o.kind != Bool && o.kind != Count {
		s += " " + o.displayValue()
	}
	if o.def != nil {
		s += fmt.Sprintf(" (default %v)", o.def)
	}
	return s
}

func (o Option) displayValue() string {
	if o.metavar != "" {
		return o.metavar
	}
	return strings.ToUpper(o.Name())
}

func printColumns(w io.Writer, title string, lines [][2]string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	width := 0
	for _, l := range lines {
		if len(l[0]) > width {
			width = len(l[0])
		}
	}
	for _, l := range lines {
		fmt.Fprintf(w, "  %-*s  %s\n", width, l[0], l[1])
	}
}

// outputWidth reports the terminal width when stdout is a terminal, and 80
// otherwise.
func outputWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 20 {
			return w
		}
	}
	return 80
}

// wrap greedily breaks s into lines at most width wide.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
