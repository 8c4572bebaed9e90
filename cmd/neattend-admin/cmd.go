package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ne-attend/ne-attend-api/api/handlers"
	"github.com/ne-attend/ne-attend-api/api/scheduler"
	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
	templates "github.com/ne-attend/ne-attend-api/templates/html"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errEmptyPassword = errors.New("password must not be empty")
)

const minPasswordLength = 8

// env is what every subcommand works against
type env struct {
	db     databases.DatabaseHelper
	users  databases.UserDatabase
	mailer scheduler.Mailer
}

// connector opens the database and returns a cleanup func
type connector func(ctx context.Context) (*env, func(), error)

func connect(ctx context.Context) (*env, func(), error) {
	conf := config.New()
	client, err := databases.NewClient(conf)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db := databases.NewDatabase(conf, client)

	e := &env{db: db, users: databases.NewUserDatabase(db)}
	if m := scheduler.NewSendgridMailer(conf.SendgridAPIKey, conf.SendgridFromEmail); m != nil {
		e.mailer = m
	}
	return e, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			zap.S().Warnw("failed to disconnect", "error", err)
		}
	}, nil
}

func newRootCmd(open connector) *cobra.Command {
	root := &cobra.Command{
		Use:           "neattend-admin",
		Short:         "Operator tasks for the NE Attend database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newCreateUserCmd(open), newResetPasswordCmd(open), newEnsureIndexesCmd(open))
	return root
}

func withEnv(cmd *cobra.Command, open connector, fn func(ctx context.Context, e *env) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	e, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, e)
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter password: ")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	if len(pwd) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return string(pwd), nil
}

func validRole(role string) bool {
	for _, r := range models.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func newCreateUserCmd(open connector) *cobra.Command {
	var email, firstname, lastname, role string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user with any role, prompting for the password",
		Long: `Create a user account. This is how the first admin is made, since
public sign-up only allows students and instructors.

Example:
  neattend-admin create-user --email dean@example.com --firstname Ada --lastname Lovelace --role admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validRole(role) {
				return fmt.Errorf("role must be one of %s", strings.Join(models.Roles, ", "))
			}
			pwd, err := promptPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			hash, err := handlers.HashPassword(pwd)
			if err != nil {
				return err
			}
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				now := time.Now().UTC()
				id, err := e.users.InsertOne(ctx, models.User{
					Firstname: strings.TrimSpace(firstname),
					Lastname:  strings.TrimSpace(lastname),
					Email:     handlers.NormalizeEmail(email),
					Password:  hash,
					Role:      role,
					CreatedAt: now,
					UpdatedAt: now,
				})
				if errors.Is(err, databases.ErrDuplicate) {
					return fmt.Errorf("a user with email %s already exists", handlers.NormalizeEmail(email))
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s\n", role, id.Hex())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&firstname, "firstname", "", "first name")
	cmd.Flags().StringVar(&lastname, "lastname", "", "last name")
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "one of "+strings.Join(models.Roles, ", "))
	for _, f := range []string{"email", "firstname", "lastname"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newResetPasswordCmd(open connector) *cobra.Command {
	var email string
	var notify bool
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for a user, prompting for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			hash, err := handlers.HashPassword(pwd)
			if err != nil {
				return err
			}
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				filter := bson.M{"email": handlers.NormalizeEmail(email)}
				user, err := e.users.FindOne(ctx, filter)
				if err != nil {
					return fmt.Errorf("failed to find user %s: %w", email, err)
				}
				err = e.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
					"password":  hash,
					"updatedAt": time.Now().UTC(),
				}})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", user.Email)

				if notify && e.mailer != nil {
					body := "Hi " + user.Firstname + ",\n\nAn administrator has reset the password on your account. " +
						"If you did not ask for this, contact your department office."
					err := e.mailer.Send(ctx, user.Email, user.Firstname, "Your password was reset",
						templates.RenderGenericEmail("Your password was reset", body), body)
					if err != nil {
						zap.S().Warnw("failed to send reset notice", "email", user.Email, "error", err)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().BoolVar(&notify, "notify", true, "email the user when SENDGRID_API_KEY is set")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newEnsureIndexesCmd(open connector) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the unique and TTL indexes every collection needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				if err := databases.EnsureIndexes(ctx, e.db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "indexes are in place")
				return nil
			})
		},
	}
}
