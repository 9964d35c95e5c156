package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/pkordes/travel-planner/internal/planner"
)

func (a *app) overviewCommand() *Command {
	var (
		withPlanning bool
		toggle       string
	)
	return &Command{
		Name:    "overview",
		Summary: "Show every item of the selected trip in one table",
		Usage:   "[--with-planning] [--toggle ID]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("overview", pflag.ContinueOnError)
			fs.BoolVar(&withPlanning, "with-planning", false, "include planning items after shopping")
			fs.StringVar(&toggle, "toggle", "", "flip the status of the row with this ID prefix first")
			return fs
		},
		Run: a.withTrips(func(ctx context.Context, _ []string) error {
			cur, err := a.currentTrip()
			if err != nil {
				return err
			}
			var opts []planner.ProjectOption
			if withPlanning {
				opts = append(opts, planner.WithPlanning())
			}
			ov := planner.NewOverview(a.client, a.planner.Lists(), opts...)

			if toggle != "" {
				row, err := resolve(ov.Rows(), rowID, toggle)
				if err != nil {
					return err
				}
				if _, err := ov.ToggleStatus(ctx, row.ID); err != nil {
					return err
				}
			}

			fmt.Fprintf(a.out, "%s\n\n", cur.Name)
			rows := ov.Rows()
			if len(rows) == 0 {
				fmt.Fprintln(a.out, "(empty)")
				return nil
			}
			t := newTable("ID", "LIST", "TASK", "PERSON", "STATUS")
			for _, r := range rows {
				cells := []string{shortID(r.ID), r.Kind.Label(), truncate(r.Task, 60), r.Person, r.Status}
				if r.Completed {
					t.addDim(cells...)
				} else {
					t.add(cells...)
				}
			}
			t.render(a.out)
			return nil
		}),
	}
}
