// Package migrations holds the PostgreSQL schema of the shared store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
