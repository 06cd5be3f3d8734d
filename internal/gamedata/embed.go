// Package gamedata provides the read-only content tables (unit classes,
// attacks, abilities) embedded at build time, and utilities for loading them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
