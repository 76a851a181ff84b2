package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelhessen/chronos/internal/adapter"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/models"
)

// ErrNoSession is returned by commands that need a signed-in user.
var ErrNoSession = errors.New("not signed in, run `chronos login` first")

type App struct {
	server adapter.ServerAdapter
	tokens TokenStore
	build  models.AppBuildInfo

	logger *logger.Logger
}

func NewApp(server adapter.ServerAdapter, tokens TokenStore, build models.AppBuildInfo, logger *logger.Logger) *App {
	return &App{
		server: server,
		tokens: tokens,
		build:  build,
		logger: logger,
	}
}

// Run executes the command line args against the server.
func (a *App) Run(ctx context.Context, args []string, out io.Writer) error {
	root := a.RootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	return root.ExecuteContext(ctx)
}

// RootCommand builds the chronos command tree. The stored token is loaded
// before every subcommand.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "chronos",
		Short:         "chronos account client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			token, err := a.tokens.Load()
			if err != nil {
				return err
			}
			a.server.SetToken(token)
			return nil
		},
	}

	root.AddCommand(
		a.newSignupCmd(),
		a.newLoginCmd(),
		a.newSessionCmd(),
		a.newSignoutCmd(),
		a.newVersionCmd(),
	)

	return root
}

type signupFlags struct {
	email     string
	password  string
	firstName string
	lastName  string
}

func (a *App) newSignupCmd() *cobra.Command {
	f := &signupFlags{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSignup(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "account password, at least 8 characters")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")

	return cmd
}

// runSignup signs the new account in right away, like the signup form does.
func (a *App) runSignup(cmd *cobra.Command, f *signupFlags) error {
	ctx := cmd.Context()

	account, err := a.server.Signup(ctx, models.SignupRequest{
		Email:     f.email,
		Password:  f.password,
		FirstName: f.firstName,
		LastName:  f.lastName,
	})
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	cmd.Printf("Account created for %s (%s)\n", account.DisplayName, account.Email)

	return a.login(cmd, models.Credentials{Email: f.email, Password: f.password})
}

func (a *App) newLoginCmd() *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.login(cmd, creds)
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")

	return cmd
}

func (a *App) login(cmd *cobra.Command, creds models.Credentials) error {
	identity, err := a.server.Login(cmd.Context(), creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err = a.tokens.Save(a.server.Token()); err != nil {
		return err
	}

	cmd.Printf("Signed in as %s\n", identity.DisplayName)
	return nil
}

func (a *App) newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.server.Session(cmd.Context())
			if err != nil {
				return err
			}
			if session.User == nil {
				// the server dropped the token, so forget it too
				if err = a.tokens.Clear(); err != nil {
					return err
				}
				return ErrNoSession
			}

			// a renewed token replaces the stored one
			if err = a.tokens.Save(a.server.Token()); err != nil {
				return err
			}

			cmd.Printf("Signed in as %s <%s>\n", session.User.DisplayName, session.User.Email)
			if session.Expires != nil {
				cmd.Printf("Session expires %s\n", session.Expires.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func (a *App) newSignoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.server.Signout(cmd.Context()); err != nil {
				a.logger.Warn().Err(err).Msg("server signout failed, clearing local token anyway")
			}
			if err := a.tokens.Clear(); err != nil {
				return err
			}
			cmd.Println("Signed out")
			return nil
		},
	}
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client and server versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Print(a.build)

			if a.server.Token() == "" {
				return ErrNoSession
			}

			version, err := a.server.Version(cmd.Context())
			if errors.Is(err, adapter.ErrNotAuthenticated) {
				return ErrNoSession
			}
			if err != nil {
				return err
			}

			cmd.Printf("Server version: %s\n", version.Version)
			return nil
		},
	}
}
