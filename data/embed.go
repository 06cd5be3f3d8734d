// Package data provides the bundled scenario files.
package data

import "embed"

// scenarioFS embeds all YAML scenarios from the data directory at build time.
//
//go:embed *.yaml
var scenarioFS embed.FS

// FS returns the embedded filesystem containing the scenarios.
func FS() embed.FS {
	return scenarioFS
}
