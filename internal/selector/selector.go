// Package selector tokenizes CSS selector text: it splits selector groups on
// top-level commas and enumerates the class tokens of a selector.
package selector

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Split splits a selector list into its comma-separated groups.
// Commas nested inside parentheses or attribute brackets do not split.
// Groups are trimmed and empty groups are dropped.
func Split(selectorText string) []string {
	lexer := css.NewLexer(parse.NewInputString(selectorText))

	var groups []string
	var current strings.Builder
	depth := 0

	flush := func() {
		if group := strings.TrimSpace(current.String()); group != "" {
			groups = append(groups, group)
		}
		current.Reset()
	}

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				flush()
				continue
			}
		}

		current.Write(text)
	}
	flush()

	return groups
}

// Classes returns the unescaped class names referenced by a selector, in
// left-to-right order. Classes inside functional pseudo-classes such as
// :not(.foo) are included; text inside attribute selectors is not.
func Classes(selectorText string) []string {
	lexer := css.NewLexer(parse.NewInputString(selectorText))

	var classes []string
	brackets := 0
	afterDot := false

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		switch {
		case tt == css.LeftBracketToken:
			brackets++
		case tt == css.RightBracketToken && brackets > 0:
			brackets--
		case brackets > 0:
		case tt == css.IdentToken && afterDot:
			classes = append(classes, Unescape(string(text)))
		}

		afterDot = brackets == 0 && tt == css.DelimToken && len(text) == 1 && text[0] == '.'
	}

	return classes
}

// HasClass reports whether the selector contains the exact class token name.
// "btn" does not match ".btn-lg".
func HasClass(selectorText, name string) bool {
	for _, class := range Classes(selectorText) {
		if class == name {
			return true
		}
	}
	return false
}

// Unescape resolves CSS escape sequences in an identifier:
// `\3A ` and `\:` both become ":".
func Unescape(ident string) string {
	if !strings.Contains(ident, `\`) {
		return ident
	}

	var sb strings.Builder
	sb.Grow(len(ident))

	for i := 0; i < len(ident); i++ {
		c := ident[i]
		if c != '\\' || i+1 >= len(ident) {
			sb.WriteByte(c)
			continue
		}

		// Hex escape: up to 6 hex digits followed by optional whitespace
		j := i + 1
		for j < len(ident) && j-i <= 6 && isHex(ident[j]) {
			j++
		}
		if j > i+1 {
			code, err := strconv.ParseUint(ident[i+1:j], 16, 32)
			if err != nil || code == 0 || code > 0x10FFFF {
				code = 0xFFFD
			}
			sb.WriteRune(rune(code))
			if j < len(ident) && isSpace(ident[j]) {
				j++
			}
			i = j - 1
			continue
		}

		// Literal escape of the next character
		sb.WriteByte(ident[i+1])
		i++
	}

	return sb.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
