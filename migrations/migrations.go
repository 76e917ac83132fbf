// Package migrations embeds the catalog schema migrations.
package migrations

import "embed"

// FS holds the golang-migrate *.sql files.
//
//go:embed *.sql
var FS embed.FS
