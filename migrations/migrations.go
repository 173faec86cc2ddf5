// Package migrations embeds the SQL schema migrations so the server can
// apply them at startup when database.migrate is enabled.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
