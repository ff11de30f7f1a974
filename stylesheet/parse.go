package stylesheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Parse reads a stylesheet into a tree. Selectors, values and at-rule params
// keep their source text, and the whitespace between nodes is recorded, so
// an unmodified sheet prints back byte for byte.
func Parse(r io.Reader) (*Sheet, error) {
	p := &parser{
		lexer: css.NewLexer(parse.NewInput(r)),
		sheet: &Sheet{},
	}
	p.stack = []Container{p.sheet}

	for {
		tt, data := p.lexer.Next()

		switch tt {
		case css.ErrorToken:
			if err := p.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse css: %w", err)
			}
			p.end()
			return p.sheet, nil

		case css.CommentToken:
			// Comments between statements are nodes; inside a prelude or
			// value they stay part of its text
			if p.buf.blank() {
				Append(p.top(), &Comment{node: node{before: p.buf.String()}, Text: string(data)})
				p.buf = nil
				continue
			}

		case css.LeftBraceToken:
			p.open()
			continue

		case css.SemicolonToken:
			p.statement(true)
			continue

		case css.RightBraceToken:
			p.close()
			continue
		}

		p.buf = append(p.buf, token{tt: tt, text: string(data)})
	}
}

// ParseString parses stylesheet source text.
func ParseString(source string) (*Sheet, error) {
	return Parse(strings.NewReader(source))
}

type token struct {
	tt   css.TokenType
	text string
}

type tokens []token

func (ts tokens) String() string {
	var sb strings.Builder
	for _, t := range ts {
		sb.WriteString(t.text)
	}
	return sb.String()
}

func (ts tokens) blank() bool {
	for _, t := range ts {
		if t.tt != css.WhitespaceToken {
			return false
		}
	}
	return true
}

// trim splits off leading and trailing whitespace. A blank list is returned
// whole as before.
func (ts tokens) trim() (before string, body tokens, after string) {
	start := 0
	for start < len(ts) && ts[start].tt == css.WhitespaceToken {
		start++
	}
	end := len(ts)
	for end > start && ts[end-1].tt == css.WhitespaceToken {
		end--
	}
	return ts[:start].String(), ts[start:end], ts[end:].String()
}

// atRule splits a trimmed "@name params" prelude.
func (ts tokens) atRule() (name, afterName, params string, ok bool) {
	if len(ts) == 0 || ts[0].tt != css.AtKeywordToken {
		return "", "", "", false
	}
	afterName, rest, _ := ts[1:].trim()
	return strings.TrimPrefix(ts[0].text, "@"), afterName, rest.String(), true
}

type parser struct {
	lexer *css.Lexer
	sheet *Sheet
	stack []Container
	buf   tokens // tokens since the last statement boundary
}

func (p *parser) top() Container {
	return p.stack[len(p.stack)-1]
}

// carry keeps whitespace that belongs to no node in front of the next one.
func (p *parser) carry(ws string) {
	p.buf = nil
	if ws != "" {
		p.buf = tokens{{tt: css.WhitespaceToken, text: ws}}
	}
}

// open starts a rule or block at-rule from the buffered prelude.
func (p *parser) open() {
	before, body, between := p.buf.trim()
	p.buf = nil

	if name, afterName, params, ok := body.atRule(); ok {
		atRule := &AtRule{
			node:      node{before: before},
			Name:      name,
			Params:    params,
			Nodes:     []Node{},
			afterName: afterName,
			between:   between,
		}
		Append(p.top(), atRule)
		p.stack = append(p.stack, atRule)
		return
	}

	rule := &Rule{
		node:     node{before: before},
		Selector: body.String(),
		Nodes:    []Node{},
		between:  between,
	}
	Append(p.top(), rule)
	p.stack = append(p.stack, rule)
}

// statement turns the buffered tokens into a declaration or a bodiless
// at-rule. terminated reports a closing semicolon. The whitespace after an
// unterminated statement is returned for the enclosing block.
func (p *parser) statement(terminated bool) string {
	before, body, after := p.buf.trim()
	p.buf = nil

	if len(body) == 0 {
		if terminated {
			p.carry(before)
			return ""
		}
		return before
	}

	trailing := ""
	if terminated {
		trailing, after = after, ""
	}

	if name, afterName, params, ok := body.atRule(); ok {
		Append(p.top(), &AtRule{
			node:         node{before: before},
			Name:         name,
			Params:       params,
			afterName:    afterName,
			between:      trailing,
			unterminated: !terminated,
		})
		return after
	}

	if decl := newDeclaration(body); decl != nil {
		decl.before = before
		decl.trailing = trailing
		decl.unterminated = !terminated
		Append(p.top(), decl)
		return after
	}

	// Not a declaration; drop it but keep the layout around it
	p.carry(before)
	return after
}

// close ends the innermost block.
func (p *parser) close() {
	after := p.statement(false)
	if len(p.stack) == 1 {
		// Stray closing brace
		p.carry(after)
		return
	}

	switch c := p.top().(type) {
	case *Rule:
		c.after = after
	case *AtRule:
		c.after = after
	}
	p.stack = p.stack[:len(p.stack)-1]
}

// end flushes the buffer at EOF. Unclosed blocks are closed implicitly.
func (p *parser) end() {
	after := p.statement(false)
	if pending := p.buf.String(); pending != "" {
		after = pending + after
		p.buf = nil
	}

	switch c := p.top().(type) {
	case *Sheet:
		c.after = after
	case *Rule:
		c.after = after
	case *AtRule:
		c.after = after
	}
}

// newDeclaration splits "prop: value [!important]" at the first colon, or
// returns nil when there is no colon or no property name.
func newDeclaration(body tokens) *Declaration {
	colon := -1
	for i, t := range body {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 {
		return nil
	}

	_, prop, propSpace := body[:colon].trim()
	if len(prop) == 0 {
		return nil
	}
	valueSpace, value, _ := body[colon+1:].trim()

	decl := &Declaration{
		Prop:    prop.String(),
		between: propSpace + ":" + valueSpace,
	}

	if i := importantIndex(value); i >= 0 {
		decl.Important = true
		decl.importantRaw = value[i:].String()
		value = value[:i]
	}
	decl.Value = value.String()
	return decl
}

// importantIndex returns the index where a trailing "! important" begins,
// leading whitespace included, or -1.
func importantIndex(value tokens) int {
	i := len(value) - 1
	if i < 0 || value[i].tt != css.IdentToken || !strings.EqualFold(value[i].text, "important") {
		return -1
	}
	i--
	for i >= 0 && value[i].tt == css.WhitespaceToken {
		i--
	}
	if i < 0 || value[i].tt != css.DelimToken || value[i].text != "!" {
		return -1
	}
	for i > 0 && value[i-1].tt == css.WhitespaceToken {
		i--
	}
	return i
}
