package database

import (
	"database/sql"
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var postgresMigrations embed.FS

// RunPostgresMigrations applies every pending up migration and returns how many ran.
func RunPostgresMigrations(db *sql.DB) (int, error) {
	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: postgresMigrations,
		Root:       "migrations",
	}
	return migrate.Exec(db, "postgres", migrations, migrate.Up)
}
