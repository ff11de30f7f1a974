// Package main provides the csstypes CLI tool for generating typed CSS class
// bindings and purging unused classes.
package main

import (
	"os"

	"github.com/yacobolo/csstypes/internal/report"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		report.NewReporter(os.Stderr, false).PrintError(err)
		os.Exit(1)
	}
}
