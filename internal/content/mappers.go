package content

import (
	"regexp"
	"strings"
)

// Named mappers for configuration files, where functions cannot be written:
//
//	identity            the match itself
//	fields              the match split on whitespace
//	quoted              every double-quoted string inside the match
//	trim-prefix:<p>     the match without the literal prefix p
//	submatch            the first capture group of the source's own pattern
const trimPrefixMapper = "trim-prefix:"

var quotedString = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// LookupMapper resolves a mapper name. pattern is the content source's regex,
// used by "submatch". ok is false for unknown names.
func LookupMapper(name string, pattern *regexp.Regexp) (Mapper, bool) {
	switch {
	case name == "submatch" && pattern != nil:
		return SubmatchMapper(pattern), true
	case name == "identity":
		return Identity, true
	case name == "fields":
		return Fields, true
	case name == "quoted":
		return Quoted, true
	case strings.HasPrefix(name, trimPrefixMapper):
		return TrimPrefix(strings.TrimPrefix(name, trimPrefixMapper)), true
	}
	return nil, false
}

// Fields splits a match on whitespace: `"btn btn--lg"` style attribute values.
func Fields(match string) []string {
	return strings.Fields(match)
}

// Quoted returns the contents of every double-quoted string in the match,
// with backslash escapes resolved: `TC!["a", "b"]` gives [a b].
func Quoted(match string) []string {
	var names []string
	for _, m := range quotedString.FindAllStringSubmatch(match, -1) {
		names = append(names, unquote(m[1]))
	}
	return names
}

// TrimPrefix strips a fixed prefix: TrimPrefix("C.") maps "C.mb_16" to "mb_16".
func TrimPrefix(prefix string) Mapper {
	return func(match string) []string {
		return []string{strings.TrimPrefix(match, prefix)}
	}
}

// SubmatchMapper returns the first capture group of pattern in the match,
// or the whole match when the pattern does not apply.
func SubmatchMapper(pattern *regexp.Regexp) Mapper {
	return func(match string) []string {
		m := pattern.FindStringSubmatch(match)
		if len(m) < 2 {
			return []string{match}
		}
		return []string{m[1]}
	}
}

func unquote(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
