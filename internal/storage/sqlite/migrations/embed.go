package migrations

import "embed"

// FS contains the embedded SQLite migrations for game history.
//
//go:embed *.sql
var FS embed.FS
