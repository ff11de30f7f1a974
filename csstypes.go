// Package csstypes turns a stylesheet into typed class-name bindings for
// application code, and optionally strips the stylesheet down to the classes
// that code actually uses.
//
// One Process call walks every style rule once. Each class token of each
// rule becomes a Class carrying the rule's declarations; the records are
// merged per name by Aggregate, handed to a Generator, and the generated
// text is written only when it differs from what is already on disk.
//
// # Generation
//
//	p, err := csstypes.New(csstypes.Options{Generator: "rust"})
//	if err != nil {
//		return err
//	}
//	css, result, err := p.ProcessCSS(source)
//
// # Purging
//
// With Purge set, content files are scanned for used classes first, and every
// selector naming an unused class is removed from the stylesheet:
//
//	p, err := csstypes.New(csstypes.Options{
//		Generator: "json",
//		OutputPath: "build/classes.json",
//		Purge:     true,
//		Content: csstypes.ContentSource{
//			Path:   "src/**/*.rs",
//			Regex:  `C\.[a-z_]+`,
//			Mapper: "trim-prefix:C.",
//		},
//	})
//
// A Filter predicate replaces the content scan with a decision per class.
//
// # CLI Tool
//
//	go install github.com/yacobolo/csstypes/cmd/csstypes@latest
package csstypes
