// Package migrations embeds the schema migration files so the binary can
// bring a fresh database up to date on its own.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
