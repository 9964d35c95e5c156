package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pkordes/travel-planner/internal/domain"
)

// templatesCommand manages the defaults copied into every new trip.
func (a *app) templatesCommand() *Command {
	var person string
	return &Command{
		Name:    "templates",
		Summary: "Manage the default items copied into new trips",
		Subcommands: []*Command{
			{
				Name:    "list",
				Summary: "List defaults of a kind (todo or packing)",
				Usage:   "KIND",
				Run: a.withClient(func(ctx context.Context, args []string) error {
					kind, err := templateKind(args, "planner templates list KIND")
					if err != nil {
						return err
					}
					tpls, err := a.client.ListTemplates(ctx, kind)
					if err != nil {
						return err
					}
					renderTemplates(a, tpls)
					return nil
				}),
			},
			{
				Name:    "add",
				Summary: "Add a default item",
				Usage:   "KIND TEXT... [--person NAME]",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
					fs.StringVarP(&person, "person", "p", "", "who the packing default is for")
					return fs
				},
				Run: a.withClient(func(ctx context.Context, args []string) error {
					kind, err := templateKind(args, "planner templates add KIND TEXT")
					if err != nil {
						return err
					}
					text := strings.TrimSpace(strings.Join(args[1:], " "))
					if text == "" {
						fmt.Fprintln(a.out, "Nothing to add")
						return nil
					}
					if !kind.HasPerson() {
						person = ""
					}
					tpl, err := a.client.CreateTemplate(ctx, kind, text, person)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Added default %s (%s)\n", tpl.Text, shortID(tpl.ID))
					return nil
				}),
			},
			{
				Name:    "rm",
				Summary: "Delete a default item",
				Usage:   "KIND ID",
				Run: a.withClient(func(ctx context.Context, args []string) error {
					if err := requireArgs(args, 2, "planner templates rm KIND ID"); err != nil {
						return err
					}
					kind, err := templateKind(args, "")
					if err != nil {
						return err
					}
					tpls, err := a.client.ListTemplates(ctx, kind)
					if err != nil {
						return err
					}
					tpl, err := resolve(tpls, templateID, args[1])
					if err != nil {
						return err
					}
					if err := a.client.DeleteTemplate(ctx, kind, tpl.ID); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Deleted default %q\n", tpl.Text)
					return nil
				}),
			},
		},
	}
}

func templateKind(args []string, usage string) (domain.ListKind, error) {
	if err := requireArgs(args, 1, usage); err != nil {
		return "", err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return "", err
	}
	if !kind.HasTemplates() {
		return "", fmt.Errorf("%w: %s lists have no defaults", domain.ErrValidation, kind)
	}
	return kind, nil
}
