package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-planner/internal/domain"
)

func (a *app) tripsCommand() *Command {
	return &Command{
		Name:    "trips",
		Summary: "List, create, select, rename and delete trips",
		Subcommands: []*Command{
			{
				Name:    "list",
				Summary: "List trips, newest first; * marks the selection",
				Run:     a.withTrips(a.listTrips),
			},
			{
				Name:    "new",
				Summary: "Create a trip seeded from your templates and select it",
				Run: a.withTrips(func(ctx context.Context, _ []string) error {
					trip, err := a.planner.CreateTrip(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Created %q (%s)\n", trip.Name, shortID(trip.ID))
					return nil
				}),
			},
			{
				Name:    "use",
				Summary: "Select a trip by ID prefix or exact name",
				Usage:   "ID|NAME",
				Run: a.withTrips(func(ctx context.Context, args []string) error {
					if err := requireArgs(args, 1, "planner trips use ID|NAME"); err != nil {
						return err
					}
					trip, err := a.findTrip(strings.Join(args, " "))
					if err != nil {
						return err
					}
					if err := a.planner.SelectTrip(ctx, trip.ID); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Selected %q\n", trip.Name)
					return nil
				}),
			},
			{
				Name:    "rename",
				Summary: "Rename the selected trip",
				Usage:   "NAME...",
				Run: a.withTrips(func(ctx context.Context, args []string) error {
					if err := requireArgs(args, 1, "planner trips rename NAME"); err != nil {
						return err
					}
					if err := a.planner.RenameTrip(ctx, strings.Join(args, " ")); err != nil {
						return err
					}
					cur, _ := a.planner.Current()
					fmt.Fprintf(a.out, "Renamed to %q\n", cur.Name)
					return nil
				}),
			},
			{
				Name:    "rm",
				Summary: "Delete the selected trip after confirmation",
				Run: a.withTrips(func(ctx context.Context, _ []string) error {
					cur, err := a.currentTrip()
					if err != nil {
						return err
					}
					deleted, err := a.planner.DeleteTrip(ctx, a)
					if err != nil {
						return err
					}
					if !deleted {
						fmt.Fprintf(a.out, "Kept %q\n", cur.Name)
						return nil
					}
					fmt.Fprintf(a.out, "Deleted %q\n", cur.Name)
					return nil
				}),
			},
		},
	}
}

func (a *app) listTrips(_ context.Context, _ []string) error {
	trips := a.planner.Trips()
	if len(trips) == 0 {
		fmt.Fprintln(a.out, "No trips yet; create one with \"planner trips new\"")
		return nil
	}
	cur, _ := a.planner.Current()
	t := newTable("", "ID", "NAME", "CREATED")
	for _, trip := range trips {
		mark := ""
		if trip.ID == cur.ID {
			mark = "*"
		}
		t.add(mark, shortID(trip.ID), trip.Name, trip.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	t.render(a.out)
	return nil
}

// findTrip matches an exact name first, then an ID prefix.
func (a *app) findTrip(ref string) (domain.Trip, error) {
	trips := a.planner.Trips()
	for _, trip := range trips {
		if trip.Name == ref {
			return trip, nil
		}
	}
	return resolve(trips, tripID, ref)
}
