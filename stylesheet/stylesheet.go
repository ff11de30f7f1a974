// Package stylesheet is a small mutable CSS syntax tree: rules, at-rules,
// declarations and comments. It is parsed with the tdewolff/parse lexer and
// keeps the source layout, so untouched parts print back as they were read.
package stylesheet

import (
	"strings"

	"github.com/yacobolo/csstypes/internal/selector"
)

// Node is any element of the tree.
type Node interface {
	// Parent returns the enclosing container, or nil for detached nodes.
	Parent() Container
	setParent(Container)
	leading() string
	setLeading(string)
}

// Container is a node holding child nodes (the sheet, a rule, or a block at-rule).
type Container interface {
	children() *[]Node
}

type node struct {
	parent Container
	before string // whitespace preceding the node
}

func (n *node) Parent() Container { return n.parent }

func (n *node) setParent(p Container) { n.parent = p }

func (n *node) leading() string { return n.before }

func (n *node) setLeading(ws string) { n.before = ws }

// Sheet is the root of a parsed stylesheet.
type Sheet struct {
	Nodes []Node
	after string
}

func (s *Sheet) children() *[]Node { return &s.Nodes }

// Rule is a style rule: a selector list and its declaration block.
type Rule struct {
	node
	Selector string
	Nodes    []Node

	between string // whitespace before "{"
	after   string // whitespace before "}"
}

func (r *Rule) children() *[]Node { return &r.Nodes }

// Selectors returns the comma-separated selector groups of the rule.
func (r *Rule) Selectors() []string {
	return selector.Split(r.Selector)
}

// SetSelectors replaces the selector list.
func (r *Rule) SetSelectors(selectors []string) {
	r.Selector = strings.Join(selectors, ", ")
}

// Declarations returns the rule's declarations in source order.
func (r *Rule) Declarations() []*Declaration {
	var decls []*Declaration
	for _, n := range r.Nodes {
		if d, ok := n.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// Remove detaches the rule from its parent.
func (r *Rule) Remove() { remove(r) }

// Removed reports whether the rule has been detached.
func (r *Rule) Removed() bool { return r.parent == nil }

// AtRule is an @-directive. Nodes is nil for statements without a block
// (@import, @charset) and non-nil for block at-rules, even when empty.
type AtRule struct {
	node
	Name   string // "media", without the @
	Params string // "(min-width: 576px)"
	Nodes  []Node

	afterName    string
	between      string // whitespace before "{" or ";"
	after        string // whitespace before "}"
	unterminated bool   // statement ended by "}" or EOF, not ";"
}

func (a *AtRule) children() *[]Node { return &a.Nodes }

// Signature returns the at-rule head: "@media (min-width: 576px)".
func (a *AtRule) Signature() string {
	return "@" + a.Name + " " + a.Params
}

// Remove detaches the at-rule from its parent.
func (a *AtRule) Remove() { remove(a) }

// Declaration is a "property: value" pair.
type Declaration struct {
	node
	Prop      string
	Value     string
	Important bool

	between      string // ":" with its surrounding whitespace
	importantRaw string // " !important" as written
	trailing     string // whitespace before ";"
	unterminated bool
}

// String renders the declaration without the trailing semicolon.
func (d *Declaration) String() string {
	s := d.Prop + ": " + d.Value
	if d.Important {
		s += " !important"
	}
	return s
}

// Comment is a /* ... */ comment, delimiters included.
type Comment struct {
	node
	Text string
}

// Append attaches nodes to the end of a container.
func Append(c Container, nodes ...Node) {
	list := c.children()
	for _, n := range nodes {
		n.setParent(c)
		*list = append(*list, n)
	}
}

func remove(n Node) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	list := parent.children()
	for i, child := range *list {
		if child != n {
			continue
		}
		// The first child's leading whitespace passes to its successor
		if i == 0 && len(*list) > 1 {
			(*list)[1].setLeading(n.leading())
		}
		*list = append((*list)[:i:i], (*list)[i+1:]...)
		break
	}
	n.setParent(nil)
}

// WalkRules calls fn for every style rule in document order, descending into
// at-rule blocks. fn may remove the rule it is given.
func (s *Sheet) WalkRules(fn func(*Rule)) {
	walkRules(s, fn)
}

func walkRules(c Container, fn func(*Rule)) {
	// Iterate a snapshot so removals during the walk do not skip siblings
	nodes := append([]Node(nil), *c.children()...)
	for _, n := range nodes {
		switch v := n.(type) {
		case *Rule:
			fn(v)
		case *AtRule:
			walkRules(v, fn)
		}
	}
}

// WalkAtRules calls fn for every at-rule, children before their parents, so
// a callback that removes empty blocks also sees blocks emptied by an inner removal.
func (s *Sheet) WalkAtRules(fn func(*AtRule)) {
	walkAtRules(s, fn)
}

func walkAtRules(c Container, fn func(*AtRule)) {
	nodes := append([]Node(nil), *c.children()...)
	for _, n := range nodes {
		if v, ok := n.(*AtRule); ok {
			walkAtRules(v, fn)
			fn(v)
		}
	}
}

// Rules returns every style rule in document order.
func (s *Sheet) Rules() []*Rule {
	var rules []*Rule
	s.WalkRules(func(r *Rule) { rules = append(rules, r) })
	return rules
}
