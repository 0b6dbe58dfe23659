// Package migrations embeds the goose SQL migrations that create the local
// store schema: the four mirrored tables, the mutation queue, and the
// per-table sync state.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
