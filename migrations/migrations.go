package migrations

import "embed"

// FS holds the catalog schema migrations, applied in filename order
//
//go:embed *.sql
var FS embed.FS
