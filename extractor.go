package csstypes

import (
	"github.com/yacobolo/csstypes/internal/selector"
	"github.com/yacobolo/csstypes/stylesheet"
)

// Extract returns one Class per class token in the rule's selector, in
// document order. Every returned Class carries all of the rule's declarations,
// tagged with the media query of the rule's direct parent.
//
// Input:
//
//	@media (min-width: 576px) {
//	  .container { max-width: 576px; }
//	}
//
// Output:
//
//	[{Name: "container", Properties: [{"max-width: 576px", "@media (min-width: 576px)"}]}]
func Extract(rule *stylesheet.Rule) []Class {
	names := classNames(rule)
	if len(names) == 0 {
		return nil
	}

	decls := rule.Declarations()
	mediaQuery := mediaQueryOf(rule)

	classes := make([]Class, 0, len(names))
	for _, name := range names {
		props := make([]Property, 0, len(decls))
		for _, decl := range decls {
			props = append(props, Property{
				Property:   decl.String(),
				MediaQuery: mediaQuery,
			})
		}
		classes = append(classes, Class{Name: name, Properties: props})
	}
	return classes
}

// classNames lists class tokens group by group.
func classNames(rule *stylesheet.Rule) []string {
	var names []string
	for _, group := range rule.Selectors() {
		names = append(names, selector.Classes(group)...)
	}
	return names
}

// mediaQueryOf returns the signature of the enclosing @media block. Only the
// direct parent is considered; @supports and other at-rules yield "".
func mediaQueryOf(rule *stylesheet.Rule) string {
	parent, ok := rule.Parent().(*stylesheet.AtRule)
	if !ok || parent.Name != "media" {
		return ""
	}
	return parent.Signature()
}
