package csstypes

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLGenerator dumps the aggregated classes as a YAML sequence.
type YAMLGenerator struct{}

// Generate implements Generator.
func (YAMLGenerator) Generate(classes []Class) (string, bool) {
	if classes == nil {
		classes = []Class{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	_ = enc.Encode(classes)
	_ = enc.Close()

	text := buf.String()
	if lineEnding != "\n" {
		text = strings.ReplaceAll(text, "\n", lineEnding)
	}
	return text, true
}
