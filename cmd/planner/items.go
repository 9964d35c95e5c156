package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pkordes/travel-planner/internal/domain"
)

func (a *app) itemsCommand() *Command {
	var person string
	return &Command{
		Name:    "items",
		Summary: "Work with the lists of the selected trip",
		Subcommands: []*Command{
			{
				Name:    "list",
				Summary: "Show lists of the selected trip (all four by default)",
				Usage:   "[KIND...]",
				Run:     a.withTrips(a.listItems),
			},
			{
				Name:    "add",
				Summary: "Add an item to a list",
				Usage:   "KIND TEXT... [--person NAME]",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
					fs.StringVarP(&person, "person", "p", "", "who the packing item is for")
					return fs
				},
				Run: a.withTrips(func(ctx context.Context, args []string) error {
					if err := requireArgs(args, 1, "planner items add KIND TEXT"); err != nil {
						return err
					}
					kind, err := parseKind(args[0])
					if err != nil {
						return err
					}
					text := strings.TrimSpace(strings.Join(args[1:], " "))
					if text == "" {
						fmt.Fprintln(a.out, "Nothing to add")
						return nil
					}
					if err := a.planner.List(kind).Add(ctx, text, person); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Added to %s: %s\n", kind.Label(), text)
					return nil
				}),
			},
			{
				Name:    "toggle",
				Summary: "Flip an item between open and done",
				Usage:   "KIND ID",
				Run: a.withTrips(func(ctx context.Context, args []string) error {
					kind, item, err := a.findItem(args, "planner items toggle KIND ID")
					if err != nil {
						return err
					}
					if err := a.planner.List(kind).Toggle(ctx, item); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "%s %s\n", checkbox(!item.Completed), item.Text)
					return nil
				}),
			},
			{
				Name:    "edit",
				Summary: "Replace an item's text",
				Usage:   "KIND ID TEXT...",
				Run: a.withTrips(func(ctx context.Context, args []string) error {
					kind, item, err := a.findItem(args, "planner items edit KIND ID TEXT")
					if err != nil {
						return err
					}
					list := a.planner.List(kind)
					if err := list.Edit(ctx, item, strings.Join(args[2:], " ")); err != nil {
						return err
					}
					if _, _, editing := list.Editing(); editing {
						list.CancelEdit()
						fmt.Fprintln(a.out, "Text is empty; nothing changed")
						return nil
					}
					fmt.Fprintln(a.out, "Updated")
					return nil
				}),
			},
			{
				Name:    "rm",
				Summary: "Delete an item",
				Usage:   "KIND ID",
				Run: a.withTrips(func(ctx context.Context, args []string) error {
					kind, item, err := a.findItem(args, "planner items rm KIND ID")
					if err != nil {
						return err
					}
					if err := a.planner.List(kind).Delete(ctx, item); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Deleted %q\n", item.Text)
					return nil
				}),
			},
			{
				Name:    "templates",
				Summary: "Show default packing items that can be adopted",
				Run: a.withTrips(func(ctx context.Context, _ []string) error {
					tpls, err := a.planner.List(domain.KindPacking).Templates(ctx)
					if err != nil {
						return err
					}
					renderTemplates(a, tpls)
					return nil
				}),
			},
			{
				Name:    "adopt",
				Summary: "Copy a default packing item into the selected trip",
				Usage:   "TEMPLATE-ID",
				Run: a.withTrips(func(ctx context.Context, args []string) error {
					if err := requireArgs(args, 1, "planner items adopt TEMPLATE-ID"); err != nil {
						return err
					}
					packing := a.planner.List(domain.KindPacking)
					tpls, err := packing.Templates(ctx)
					if err != nil {
						return err
					}
					tpl, err := resolve(tpls, templateID, args[0])
					if err != nil {
						return err
					}
					if err := packing.AdoptTemplate(ctx, tpl); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Added to Packing: %s\n", tpl.Text)
					return nil
				}),
			},
		},
	}
}

func (a *app) listItems(_ context.Context, args []string) error {
	cur, err := a.currentTrip()
	if err != nil {
		return err
	}
	kinds := domain.ListKinds
	if len(args) > 0 {
		kinds = nil
		for _, arg := range args {
			kind, err := parseKind(arg)
			if err != nil {
				return err
			}
			kinds = append(kinds, kind)
		}
	}

	fmt.Fprintf(a.out, "%s\n\n", cur.Name)
	for i, kind := range kinds {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		title(a.out, kind.Label())
		items := a.planner.Items(kind)
		if len(items) == 0 {
			fmt.Fprintln(a.out, "(empty)")
			continue
		}
		headers := []string{"ID", "DONE", "TEXT"}
		if kind.HasPerson() {
			headers = append(headers, "PERSON")
		}
		t := newTable(headers...)
		for _, it := range items {
			cells := []string{shortID(it.ID), checkbox(it.Completed), truncate(it.Text, 60)}
			if kind.HasPerson() {
				cells = append(cells, it.Person)
			}
			if it.Completed {
				t.addDim(cells...)
			} else {
				t.add(cells...)
			}
		}
		t.render(a.out)
	}
	return nil
}

// findItem parses KIND ID from args and resolves the item in the loaded list.
func (a *app) findItem(args []string, usage string) (domain.ListKind, domain.Item, error) {
	if err := requireArgs(args, 2, usage); err != nil {
		return "", domain.Item{}, err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return "", domain.Item{}, err
	}
	if _, err := a.currentTrip(); err != nil {
		return "", domain.Item{}, err
	}
	item, err := resolve(a.planner.Items(kind), itemID, args[1])
	if err != nil {
		return "", domain.Item{}, err
	}
	return kind, item, nil
}

func renderTemplates(a *app, tpls []domain.DefaultItem) {
	if len(tpls) == 0 {
		fmt.Fprintln(a.out, "No templates")
		return
	}
	t := newTable("ID", "TEXT", "PERSON")
	for _, tpl := range tpls {
		t.add(shortID(tpl.ID), truncate(tpl.Text, 60), tpl.Person)
	}
	t.render(a.out)
}
