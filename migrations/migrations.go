// Package migrations embeds the goose SQL migrations so the server
// binary can apply them without a migrations directory on disk.
package migrations

import "embed"

// FS holds the embedded migration files in goose's expected layout.
//
//go:embed *.sql
var FS embed.FS
