package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

func (a *app) imagesCommand() *Command {
	return &Command{
		Name:    "images",
		Summary: "Upload and list photos",
		Subcommands: []*Command{
			{
				Name:    "list",
				Summary: "List uploaded images, oldest first",
				Run: a.withClient(func(ctx context.Context, _ []string) error {
					imgs, err := a.client.ListImages(ctx)
					if err != nil {
						return err
					}
					if len(imgs) == 0 {
						fmt.Fprintln(a.out, "No images")
						return nil
					}
					t := newTable("ID", "TYPE", "SIZE", "URL")
					for _, img := range imgs {
						t.add(shortID(img.ID), img.ContentType, humanSize(img.Size), img.URL)
					}
					t.render(a.out)
					return nil
				}),
			},
			{
				Name:    "upload",
				Summary: "Upload a PNG or JPEG file",
				Usage:   "FILE",
				Run: a.withClient(func(ctx context.Context, args []string) error {
					if err := requireArgs(args, 1, "planner images upload FILE"); err != nil {
						return err
					}
					f, err := os.Open(args[0])
					if err != nil {
						return err
					}
					defer f.Close()
					img, err := a.client.UploadImage(ctx, filepath.Base(args[0]), f)
					if err != nil {
						return err
					}
					fmt.Fprintln(a.out, img.URL)
					return nil
				}),
			},
		},
	}
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
