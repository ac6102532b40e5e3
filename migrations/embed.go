// Package migrations holds the versioned SQL schema, embedded for golang-migrate's iofs source.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
