package assets

import "embed"

// FS holds the bundled quote catalog and the SQL migrations.
//
//go:embed quotes.json sql/*.sql
var FS embed.FS

// QuotesFile is the path of the bundled catalog inside FS.
const QuotesFile = "quotes.json"

// MigrationsDir is the directory of *.sql migrations inside FS.
const MigrationsDir = "sql"
