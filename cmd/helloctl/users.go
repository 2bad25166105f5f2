package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/hello-world/hello-world/internal/auth"
	"github.com/hello-world/hello-world/internal/model"
)

// commandTimeout bounds connecting and running the queries of one command.
const commandTimeout = 30 * time.Second

var errDatabaseURLRequired = errors.New("DATABASE_URL or --database-url is required")

// userStore is the slice of the repository the user commands need.
type userStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user *model.User) error
	DeleteUserByUsername(ctx context.Context, username string) error
	Close()
}

type openStoreFunc func(ctx context.Context, databaseURL string) (userStore, error)

type createdUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func requireDatabaseURL(c *cli.Context) (string, error) {
	u := strings.TrimSpace(c.String("database-url"))
	if u == "" {
		return "", errDatabaseURLRequired
	}
	return u, nil
}

func usersCommand(open openStoreFunc) *cli.Command {
	withStore := func(fn func(ctx context.Context, c *cli.Context, store userStore) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			databaseURL, err := requireDatabaseURL(c)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Context, commandTimeout)
			defer cancel()

			store, err := open(ctx, databaseURL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer store.Close()

			return fn(ctx, c, store)
		}
	}

	return &cli.Command{
		Name:  "users",
		Usage: "Manage user accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{
						Name:     "password",
						Usage:    fmt.Sprintf("at least %d characters", auth.MinPasswordLength),
						EnvVars:  []string{"HELLOCTL_PASSWORD"},
						Required: true,
					},
					&cli.StringFlag{Name: "format", Value: "plain", Usage: "output format: plain or json"},
				},
				Action: withStore(createUser),
			},
			{
				Name:   "count",
				Usage:  "Print the number of users",
				Action: withStore(countUsers),
			},
			{
				Name:  "delete",
				Usage: "Delete a user by username",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
				},
				Action: withStore(deleteUser),
			},
		},
	}
}

func createUser(ctx context.Context, c *cli.Context, store userStore) error {
	username := strings.TrimSpace(c.String("username"))
	if username == "" {
		return errors.New("username must not be blank")
	}

	email := strings.TrimSpace(c.String("email"))
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return fmt.Errorf("invalid email %q: %w", email, err)
		}
		email = addr.Address
	}

	format := c.String("format")
	if format != "plain" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	hash, err := auth.HashPassword(c.String("password"))
	if err != nil {
		return err
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return err
	}

	out := createdUser{ID: user.ID, Username: user.Username, Email: user.Email}
	if format == "json" {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintf(c.App.Writer, "created user %s (%s)\n", out.Username, out.ID)
	return nil
}

func countUsers(ctx context.Context, c *cli.Context, store userStore) error {
	count, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, count)
	return nil
}

func deleteUser(ctx context.Context, c *cli.Context, store userStore) error {
	username := strings.TrimSpace(c.String("username"))
	if err := store.DeleteUserByUsername(ctx, username); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted user %s\n", username)
	return nil
}
