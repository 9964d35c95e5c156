package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

func (a *app) exportCommand() *Command {
	var format, output string
	return &Command{
		Name:    "export",
		Summary: "Export every list of the selected trip as CSV or JSON",
		Usage:   "[--format csv|json] [--output FILE]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
			fs.StringVarP(&format, "format", "f", "csv", "csv or json")
			fs.StringVarP(&output, "output", "o", "-", "file to write, - for stdout")
			return fs
		},
		Run: a.withTrips(func(ctx context.Context, _ []string) error {
			cur, err := a.currentTrip()
			if err != nil {
				return err
			}
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}

			var w io.Writer = a.out
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if format == "csv" {
				return a.client.ExportCSV(ctx, cur.ID, w)
			}
			rows, err := a.client.Export(ctx, cur.ID)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}),
	}
}
