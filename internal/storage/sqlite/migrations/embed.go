// Package migrations embeds the SQLite schema migrations for campaign
// storage.
package migrations

import "embed"

// FS contains embedded SQLite migrations applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
