// Package content finds the class names used by source files: it expands
// glob patterns, reads each file, and runs token extractors over the text.
package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls used-class tokens out of raw file text.
type Extractor interface {
	Extract(text string) []string
}

// Mapper turns one raw match into zero or more class names.
type Mapper func(match string) []string

// Identity returns the match unchanged.
func Identity(match string) []string {
	return []string{match}
}

// RegexExtractor applies Pattern to the whole text and maps every match.
type RegexExtractor struct {
	Pattern *regexp.Regexp
	Mapper  Mapper // nil means Identity
}

// Extract implements Extractor.
func (e RegexExtractor) Extract(text string) []string {
	mapper := e.Mapper
	if mapper == nil {
		mapper = Identity
	}

	var names []string
	for _, match := range e.Pattern.FindAllString(text, -1) {
		names = append(names, mapper(match)...)
	}
	return names
}

// HTMLExtractor returns every whitespace-separated token of every class
// attribute in an HTML document or fragment.
type HTMLExtractor struct{}

// Extract implements Extractor.
func (HTMLExtractor) Extract(text string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil
	}

	var names []string
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		names = append(names, strings.Fields(class)...)
	})
	return names
}

// Extractors runs several extractors and concatenates their results.
type Extractors []Extractor

// Extract implements Extractor.
func (list Extractors) Extract(text string) []string {
	var names []string
	for _, e := range list {
		names = append(names, e.Extract(text)...)
	}
	return names
}
