// Command planner is a terminal client for the travel planner API. It keeps
// the session and the selected trip in a small state file so consecutive
// invocations behave like one session.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	global := pflag.NewFlagSet("planner", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(io.Discard)
	server := global.String("server", os.Getenv("PLANNER_SERVER"), "API base URL (defaults to the saved server, then http://localhost:8080)")
	statePath := global.String("state", defaultStatePath(), "file holding the session and the selected trip")
	timeout := global.Duration("timeout", 30*time.Second, "timeout of each API request")
	yes := global.BoolP("yes", "y", false, "answer yes to confirmation prompts")
	verbose := global.BoolP("verbose", "v", false, "log debug events")

	a := &app{
		server:    *server,
		statePath: *statePath,
		in:        stdin,
		out:       stdout,
		err:       stderr,
	}
	root := rootCommand(a)
	root.Flags = func() *pflag.FlagSet { return global }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			root.PrintHelp(stderr)
			return nil
		}
		return fmt.Errorf("%w\n\nRun 'planner --help' for usage.", err)
	}
	a.server = *server
	a.statePath = *statePath
	a.timeout = *timeout
	a.yes = *yes
	a.log = newLogger(stderr, *verbose)
	if f, ok := stdin.(*os.File); ok {
		a.interactive = term.IsTerminal(int(f.Fd()))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return root.Execute(ctx, stderr, global.Args())
}

func rootCommand(a *app) *Command {
	return &Command{
		Name:    "planner",
		Summary: "Plan trips from the terminal: to-dos, packing, shopping and day plans.",
		Subcommands: []*Command{
			a.signupCommand(),
			a.loginCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.resetPasswordCommand(),
			a.oauthURLCommand(),
			a.prefsCommand(),
			a.tripsCommand(),
			a.itemsCommand(),
			a.templatesCommand(),
			a.overviewCommand(),
			a.exploreCommand(),
			a.imagesCommand(),
			a.exportCommand(),
		},
	}
}
