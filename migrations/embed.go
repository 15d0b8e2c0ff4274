// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and server bootstrap.
// Each dialect has its own directory because the timestamp defaults differ
// between Postgres and SQLite.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// Postgres returns the migrations for the Postgres blob store.
// Pass it to goose.NewProvider instead of relying on a filesystem path at runtime.
func Postgres() fs.FS {
	return mustSub(postgresFS, "postgres")
}

// SQLite returns the migrations for the on-device SQLite blob store.
func SQLite() fs.FS {
	return mustSub(sqliteFS, "sqlite")
}

func mustSub(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}
