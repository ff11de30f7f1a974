package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/csstypes"
)

// JSONOutput is the machine-readable run summary.
type JSONOutput struct {
	Version   string         `json:"version"`
	Timestamp string         `json:"timestamp"`
	Output    JSONOutputFile `json:"output"`
	Classes   JSONClasses    `json:"classes"`
	Purge     JSONPurge      `json:"purge"`
}

// JSONOutputFile describes the generated file.
type JSONOutputFile struct {
	Path      string `json:"path"`
	Generated bool   `json:"generated"`
	Written   bool   `json:"written"`
}

// JSONClasses counts extracted and generated classes.
type JSONClasses struct {
	Extracted int `json:"extracted"`
	Generated int `json:"generated"`
}

// JSONPurge counts what filtering and purging removed.
type JSONPurge struct {
	FilesScanned     int `json:"files_scanned"`
	UsedClasses      int `json:"used_classes"`
	RulesRemoved     int `json:"rules_removed"`
	SelectorsRemoved int `json:"selectors_removed"`
	AtRulesRemoved   int `json:"at_rules_removed"`
}

// schemaVersion changes whenever JSONOutput changes shape.
const schemaVersion = "1.0"

// now is replaced in tests.
var now = time.Now

// WriteJSON writes result as indented JSON.
func WriteJSON(w io.Writer, result *csstypes.Result) error {
	out := JSONOutput{
		Version:   schemaVersion,
		Timestamp: now().UTC().Format(time.RFC3339),
		Output: JSONOutputFile{
			Path:      result.OutputPath,
			Generated: result.Generated,
			Written:   result.Written,
		},
		Classes: JSONClasses{
			Extracted: result.ClassesExtracted,
			Generated: result.ClassesGenerated,
		},
		Purge: JSONPurge{
			FilesScanned:     result.FilesScanned,
			UsedClasses:      result.UsedClasses,
			RulesRemoved:     result.RulesRemoved,
			SelectorsRemoved: result.SelectorsRemoved,
			AtRulesRemoved:   result.AtRulesRemoved,
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
