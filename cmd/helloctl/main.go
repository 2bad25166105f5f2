// Command helloctl administers the hello-world database: schema migrations
// and user accounts.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/hello-world/hello-world/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newApp(openRepository)
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func openRepository(ctx context.Context, databaseURL string) (userStore, error) {
	return repository.New(ctx, databaseURL)
}

func newApp(open openStoreFunc) *cli.App {
	return &cli.App{
		Name:  "helloctl",
		Usage: "Manage the hello-world database and user accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "PostgreSQL connection string",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			usersCommand(open),
		},
	}
}
