package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/grid"
)

func (a *app) exploreCommand() *Command {
	var (
		opts        grid.Options
		page, limit int
	)
	return &Command{
		Name:    "explore",
		Summary: "Browse your raw collections when the server allows it",
		Usage:   "[COLLECTION] [--sort COLUMN] [--desc] [--filter TEXT] [--page N] [--limit N]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("explore", pflag.ContinueOnError)
			fs.StringVar(&opts.SortBy, "sort", "", "column to sort by")
			fs.BoolVar(&opts.Desc, "desc", false, "sort descending")
			fs.StringVar(&opts.Filter, "filter", "", "keep rows containing this text")
			fs.IntVar(&page, "page", 1, "page to fetch")
			fs.IntVar(&limit, "limit", 20, "rows per page (max 100)")
			return fs
		},
		Run: a.withClient(func(ctx context.Context, args []string) error {
			cols, err := a.client.Collections(ctx)
			if err != nil {
				return err
			}
			if !cols.Enabled {
				return fmt.Errorf("%w: the explorer is disabled on this server", domain.ErrForbidden)
			}
			if len(args) == 0 {
				for _, c := range cols.Collections {
					fmt.Fprintln(a.out, c)
				}
				return nil
			}

			res, err := a.client.Browse(ctx, args[0], page, limit)
			if err != nil {
				return err
			}
			records := make([]grid.Record, len(res.Rows))
			for i, r := range res.Rows {
				records[i] = grid.Record(r)
			}
			rows := grid.Build(records, opts)
			if len(rows) == 0 {
				fmt.Fprintln(a.out, "(no rows)")
				return nil
			}

			columns := grid.Columns(records)
			t := newTable(columns...)
			for _, r := range rows {
				if r.Synthetic {
					t.addBanner(grid.Label)
					continue
				}
				cells := make([]string, len(columns))
				for j, c := range columns {
					cells[j] = truncate(grid.Cell(r.Record[c]), 40)
				}
				t.add(cells...)
			}
			t.render(a.out)
			window := domain.PaginationParams{Page: res.Page, Limit: res.Limit}
			fmt.Fprintf(a.out, "\npage %d of %d, %d rows\n", res.Page, window.TotalPages(res.Total), res.Total)
			return nil
		}),
	}
}
