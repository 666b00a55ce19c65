package migrations

import "embed"

// Migrations holds the numbered golang-migrate files for the auth database.
//
//go:embed *.sql
var Migrations embed.FS
