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
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finboard",
		Short:         "Touch interaction engine for the finance dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newReplayCmd())
	root.AddCommand(newCategoriesCmd())
	root.AddCommand(newConfigCmd())
	return root
}
