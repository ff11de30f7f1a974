package csstypes

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSONGenerator dumps the aggregated classes as JSON indented with 4 spaces,
// followed by one platform line ending.
type JSONGenerator struct{}

// Generate implements Generator.
func (JSONGenerator) Generate(classes []Class) (string, bool) {
	if classes == nil {
		classes = []Class{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	// Class and Property marshal only strings, so encoding cannot fail.
	_ = enc.Encode(classes)

	text := strings.TrimSuffix(buf.String(), "\n")
	if lineEnding != "\n" {
		text = strings.ReplaceAll(text, "\n", lineEnding)
	}
	return text + lineEnding, true
}
