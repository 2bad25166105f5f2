package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hello-world/hello-world/internal/migrations"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or inspect schema migrations",
		Subcommands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Action: withMigrationDB(migrations.Up, "migrations applied"),
			},
			{
				Name:   "down",
				Usage:  "Roll back the most recent migration",
				Action: withMigrationDB(migrations.Down, "rolled back one migration"),
			},
			{
				Name:   "status",
				Usage:  "Show which migrations are applied",
				Action: withMigrationDB(migrations.Status, ""),
			},
		},
	}
}

func withMigrationDB(fn func(context.Context, *sql.DB) error, done string) cli.ActionFunc {
	return func(c *cli.Context) error {
		databaseURL, err := requireDatabaseURL(c)
		if err != nil {
			return err
		}

		db, err := migrations.Open(databaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := fn(c.Context, db); err != nil {
			return err
		}
		if done != "" {
			fmt.Fprintln(c.App.Writer, done)
		}
		return nil
	}
}
