// Command forkapi calls a Fork CMS style JSON API from the shell and serves a
// local fake of one for development.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "forkapi: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "forkapi",
		Short:         "Client for JSON-over-HTTP APIs that answer with a meta/data envelope",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(callSubcommand())
	root.AddCommand(mockSubcommand())
	return root
}
