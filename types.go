package csstypes

import (
	"bytes"
	"encoding/json"
)

// Property is one declaration of a class together with the media query of
// the rule it came from.
type Property struct {
	Property   string // "max-width: 576px"
	MediaQuery string // "@media (min-width: 576px)", empty when the rule is not inside @media
}

// propertyJSON is the serialized shape of Property: an absent media query is null.
type propertyJSON struct {
	Property   string  `json:"property" yaml:"property"`
	MediaQuery *string `json:"mediaQuery" yaml:"mediaQuery"`
}

func (p Property) wire() propertyJSON {
	w := propertyJSON{Property: p.Property}
	if p.MediaQuery != "" {
		mq := p.MediaQuery
		w.MediaQuery = &mq
	}
	return w
}

// MarshalJSON implements json.Marshaler. Declarations such as
// content: "<" are kept readable, not HTML-escaped.
func (p Property) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p.wire()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Property) MarshalYAML() (any, error) {
	return p.wire(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Property) UnmarshalJSON(data []byte) error {
	var w propertyJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Property = w.Property
	p.MediaQuery = ""
	if w.MediaQuery != nil {
		p.MediaQuery = *w.MediaQuery
	}
	return nil
}

// Class is a CSS class and its declarations. The extractor yields one Class
// per class token of a rule; Aggregate merges them into one Class per name.
type Class struct {
	Name       string     `json:"name" yaml:"name"` // "btn--primary", unescaped, no leading dot
	Properties []Property `json:"properties" yaml:"properties"`
}

// Result reports what one Process call did.
type Result struct {
	ClassesExtracted int    // Class records collected by the rule walk
	ClassesGenerated int    // Unique class names handed to the generator
	SelectorsRemoved int    // Selector groups dropped from rules that survived
	RulesRemoved     int    // Rules removed because no selector group survived
	AtRulesRemoved   int    // Empty at-rules removed after purging
	UsedClasses      int    // Size of the used-class set (purge mode)
	FilesScanned     int    // Content files read (purge mode)
	Generated        bool   // The generator produced output
	Written          bool   // The output file was (re)written
	OutputPath       string // Resolved output path
}
