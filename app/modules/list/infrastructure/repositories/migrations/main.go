package listmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema of the Postgres list source.
var Migrations = migrate.NewMigrations()
