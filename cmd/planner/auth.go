package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
)

func (a *app) credentialsCommand(name, summary string, signIn func(ctx context.Context, email, password string) error) *Command {
	var passwordFile string
	return &Command{
		Name:    name,
		Summary: summary,
		Usage:   "EMAIL [--password-file PATH]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
			fs.StringVar(&passwordFile, "password-file", "", "read the password from a file instead of prompting")
			return fs
		},
		Run: a.withClient(func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, "planner "+name+" EMAIL"); err != nil {
				return err
			}
			password, err := a.readPassword(passwordFile, "Password: ")
			if err != nil {
				return err
			}
			return signIn(ctx, args[0], password)
		}),
	}
}

func (a *app) signupCommand() *Command {
	return a.credentialsCommand("signup", "Create an account and sign in", func(ctx context.Context, email, password string) error {
		user, err := a.client.SignUp(ctx, email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Signed up as %s\n", user.Email)
		return nil
	})
}

func (a *app) loginCommand() *Command {
	return a.credentialsCommand("login", "Sign in with email and password", func(ctx context.Context, email, password string) error {
		user, err := a.client.SignIn(ctx, email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Signed in as %s\n", user.Email)
		return nil
	})
}

func (a *app) logoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "Sign out and forget the session",
		Run: a.withClient(func(ctx context.Context, _ []string) error {
			if err := a.client.SignOut(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out")
			return nil
		}),
	}
}

func (a *app) whoamiCommand() *Command {
	return &Command{
		Name:    "whoami",
		Summary: "Show the signed-in user",
		Run: a.withClient(func(ctx context.Context, _ []string) error {
			user, err := a.client.CurrentUser(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (%s)\n", user.Email, user.ID)
			return nil
		}),
	}
}

func (a *app) resetPasswordCommand() *Command {
	var passwordFile string
	return &Command{
		Name:    "reset-password",
		Summary: "Request or complete a password reset",
		Subcommands: []*Command{
			{
				Name:    "request",
				Summary: "Send a reset token to EMAIL",
				Usage:   "EMAIL",
				Run: a.withClient(func(ctx context.Context, args []string) error {
					if err := requireArgs(args, 1, "planner reset-password request EMAIL"); err != nil {
						return err
					}
					if err := a.client.RequestPasswordReset(ctx, args[0]); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "If the address has an account, a reset token is on its way")
					return nil
				}),
			},
			{
				Name:    "confirm",
				Summary: "Set a new password with a reset token",
				Usage:   "TOKEN [--password-file PATH]",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("confirm", pflag.ContinueOnError)
					fs.StringVar(&passwordFile, "password-file", "", "read the new password from a file instead of prompting")
					return fs
				},
				Run: a.withClient(func(ctx context.Context, args []string) error {
					if err := requireArgs(args, 1, "planner reset-password confirm TOKEN"); err != nil {
						return err
					}
					password, err := a.readPassword(passwordFile, "New password: ")
					if err != nil {
						return err
					}
					if err := a.client.ConfirmPasswordReset(ctx, args[0], password); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "Password updated; sign in with \"planner login\"")
					return nil
				}),
			},
		},
	}
}

func (a *app) oauthURLCommand() *Command {
	return &Command{
		Name:    "oauth-url",
		Summary: "Print the URL that starts provider sign-in in a browser",
		Run: func(context.Context, []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, a.client.OAuthLoginURL())
			return nil
		},
	}
}

func (a *app) prefsCommand() *Command {
	return &Command{
		Name:    "prefs",
		Summary: "Show the server's preferences",
		Run: a.withClient(func(ctx context.Context, _ []string) error {
			p, err := a.client.Preferences(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "explorer_enabled: %t\n", p.ExplorerEnabled)
			return nil
		}),
	}
}
