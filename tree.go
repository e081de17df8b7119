// Copyright 2021 Jonathan Amsterdam.

package commander

import (
	"strings"

	"github.com/ef-ds/deque"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// The namespace tree. Qualified names are underscore-delimited paths; the
// builder walks each path one segment at a time over an arena of nodes,
// synthesizing interior nodes where no command is declared. The tree is
// rebuilt from the registry at the start of every run and discarded after
// dispatch, so one build can never contaminate another.

// node is a namespace node: a leaf carrying a CommandSpec, or a synthesized
// interior node that only hosts children.
type node struct {
	segment     string
	parent      *node
	children    *orderedmap.OrderedMap[string, *node]
	spec        *CommandSpec
	synthesized bool
	doc         string
}

func newNode(parent *node, segment, doc string) *node {
	return &node{
		segment:  segment,
		parent:   parent,
		children: orderedmap.New[string, *node](),
		doc:      doc,
	}
}

// child returns the child keyed by seg, or nil.
func (n *node) child(seg string) *node {
	c, _ := n.children.Get(seg)
	return c
}

// qualified returns the underscore-joined path from the root, which is the
// arena key for the node.
func (n *node) qualified() string {
	if n.parent == nil {
		return ""
	}
	if q := n.parent.qualified(); q != "" {
		return q + "_" + n.segment
	}
	return n.segment
}

// pathSegments returns the invocation path from the root.
func (n *node) pathSegments() []string {
	if n.parent == nil {
		return nil
	}
	return append(n.parent.pathSegments(), n.segment)
}

type tree struct {
	root  *node
	arena map[string]*node
}

// buildTree materializes the namespace tree from the registry. depth 0
// attaches every spec as a direct child of the root, underscores and all.
// depth >= 1 splits every qualified name into segments; the split itself is
// unbounded, depth only gates whether it happens. Specs are processed in
// lexicographic order for deterministic sibling ordering.
func buildTree(reg *registry, depth int) (*tree, error) {
	t := &tree{
		root:  newNode(nil, "", ""),
		arena: map[string]*node{},
	}
	for _, name := range reg.names() {
		spec := reg.specs[name]
		if depth == 0 {
			if err := t.attach(t.root, name, spec); err != nil {
				return nil, err
			}
			continue
		}
		segs := deque.New()
		for _, s := range strings.Split(name, "_") {
			segs.PushBack(s)
		}
		cur := t.root
		for segs.Len() > 1 {
			v, _ := segs.PopFront()
			var err error
			if cur, err = t.ensure(cur, v.(string)); err != nil {
				return nil, err
			}
		}
		last, _ := segs.PopFront()
		if err := t.attach(cur, last.(string), spec); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ensure returns the namespace node for seg under parent, synthesizing one
// when absent. Resolving the same segment from two different specs reuses
// the cached node; a previously attached leaf is extended in place and
// remains directly invocable.
func (t *tree) ensure(parent *node, seg string) (*node, error) {
	if !validIdentifier(seg) {
		return nil, &InvalidNameError{Name: seg}
	}
	key := childKey(parent, seg)
	if n, ok := t.arena[key]; ok {
		return n, nil
	}
	n := newNode(parent, seg, seg+" commands")
	n.synthesized = true
	parent.children.Set(seg, n)
	t.arena[key] = n
	return n, nil
}

// attach registers spec as a leaf named seg under parent. The leaf goes into
// the arena immediately so a later spec sharing it as a prefix can hang
// children off it without special-casing insertion order.
func (t *tree) attach(parent *node, seg string, spec *CommandSpec) error {
	if !validIdentifier(strings.ReplaceAll(seg, "_", "")) {
		return &InvalidNameError{Name: seg}
	}
	key := childKey(parent, seg)
	if n, ok := t.arena[key]; ok {
		if n.spec != nil {
			return &DuplicateCommandError{Name: spec.name}
		}
		n.spec = spec
		n.synthesized = false
		n.doc = spec.doc
		return nil
	}
	n := newNode(parent, seg, spec.doc)
	n.spec = spec
	parent.children.Set(seg, n)
	t.arena[key] = n
	return nil
}

func childKey(parent *node, seg string) string {
	if q := parent.qualified(); q != "" {
		return q + "_" + seg
	}
	return seg
}
