package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_dispatchAndFlags(t *testing.T) {
	var (
		got  []string
		name string
	)
	root := &Command{
		Name: "planner",
		Subcommands: []*Command{{
			Name: "trips",
			Subcommands: []*Command{{
				Name: "rename",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("rename", pflag.ContinueOnError)
					fs.StringVar(&name, "suffix", "", "")
					return fs
				},
				Run: func(_ context.Context, args []string) error {
					got = args
					return nil
				},
			}},
		}},
	}

	var stderr bytes.Buffer
	err := root.Execute(context.Background(), &stderr, []string{"trips", "rename", "Lisbon", "--suffix", "2025", "spring"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Lisbon", "spring"}, got)
	assert.Equal(t, "2025", name)
}

func TestCommand_unknownAndMissing(t *testing.T) {
	root := &Command{
		Name:        "planner",
		Subcommands: []*Command{{Name: "trips", Run: func(context.Context, []string) error { return nil }}},
	}
	var stderr bytes.Buffer

	err := root.Execute(context.Background(), &stderr, []string{"tripz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "tripz"`)

	err = root.Execute(context.Background(), &stderr, nil)
	require.EqualError(t, err, "subcommand required")
	assert.Contains(t, stderr.String(), "trips")
}

func TestCommand_help(t *testing.T) {
	root := rootCommand(&app{})
	var stderr bytes.Buffer

	require.NoError(t, root.Execute(context.Background(), &stderr, []string{"--help"}))

	for _, name := range []string{"trips", "items", "overview", "explore", "export"} {
		assert.Contains(t, stderr.String(), name)
	}
}

func TestCommand_badFlag(t *testing.T) {
	root := rootCommand(&app{})
	var stderr bytes.Buffer

	err := root.Execute(context.Background(), &stderr, []string{"overview", "--nope"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "planner overview --help")
}
