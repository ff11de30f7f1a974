package stylesheet

import (
	"strings"
)

// String prints the sheet with its source layout. Nodes removed from the tree
// take their leading whitespace with them; rewritten selector lists are joined
// with ", ".
func (s *Sheet) String() string {
	var sb strings.Builder
	writeNodes(&sb, s.Nodes)
	sb.WriteString(s.after)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		sb.WriteString(n.leading())

		switch v := n.(type) {
		case *Comment:
			sb.WriteString(v.Text)

		case *Declaration:
			writeDeclaration(sb, v)

		case *Rule:
			sb.WriteString(v.Selector + v.between + "{")
			writeNodes(sb, v.Nodes)
			sb.WriteString(v.after + "}")

		case *AtRule:
			sb.WriteString("@" + v.Name)
			if v.Params != "" {
				afterName := v.afterName
				if afterName == "" && v.Params[0] != '(' {
					afterName = " "
				}
				sb.WriteString(afterName + v.Params)
			}
			sb.WriteString(v.between)
			if v.Nodes == nil {
				if !v.unterminated {
					sb.WriteString(";")
				}
				continue
			}
			sb.WriteString("{")
			writeNodes(sb, v.Nodes)
			sb.WriteString(v.after + "}")
		}
	}
}

func writeDeclaration(sb *strings.Builder, d *Declaration) {
	between := d.between
	if between == "" {
		between = ": "
	}
	sb.WriteString(d.Prop + between + d.Value)

	if d.Important {
		important := d.importantRaw
		if important == "" {
			important = " !important"
		}
		sb.WriteString(important)
	}

	sb.WriteString(d.trailing)
	if !d.unterminated {
		sb.WriteString(";")
	}
}
