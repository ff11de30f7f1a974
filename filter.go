package csstypes

import (
	"github.com/yacobolo/csstypes/internal/selector"
	"github.com/yacobolo/csstypes/stylesheet"
)

// removeClass drops every selector group of rule that contains the class
// token name. The match is on whole class tokens, so removing "btn" keeps
// ".btn-lg" and removes both ".btn" and ".card.btn". The rule is removed
// when no group survives.
func removeClass(rule *stylesheet.Rule, name string, res *Result) {
	groups := rule.Selectors()
	kept := make([]string, 0, len(groups))
	for _, group := range groups {
		if !selector.HasClass(group, name) {
			kept = append(kept, group)
		}
	}

	switch {
	case len(kept) == 0:
		rule.Remove()
		res.RulesRemoved++
	case len(kept) < len(groups):
		rule.SetSelectors(kept)
		res.SelectorsRemoved += len(groups) - len(kept)
	}
}

// pruneEmptyAtRules removes at-rules left without content by a purge: a block
// whose node list is empty, or a bodiless at-rule with no parameters. Inner
// blocks are visited first, so nested blocks emptied this way cascade.
func pruneEmptyAtRules(sheet *stylesheet.Sheet, res *Result) {
	sheet.WalkAtRules(func(at *stylesheet.AtRule) {
		emptyBlock := at.Nodes != nil && len(at.Nodes) == 0
		bare := at.Nodes == nil && at.Params == ""
		if emptyBlock || bare {
			at.Remove()
			res.AtRulesRemoved++
		}
	})
}
