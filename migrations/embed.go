// Package migrations embeds the SQL migration files applied to the
// local snapshot cache at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
