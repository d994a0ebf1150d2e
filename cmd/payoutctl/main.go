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
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "payoutctl",
		Short:        "Operator tool for promoter commission payouts",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("log-level", "l", "", "log level (overrides LOG_LVL)")
	root.PersistentFlags().String("log-output", "", "log destination: stderr, stdout or a file (overrides LOG_OUTPUT)")

	root.AddCommand(settleCmd())
	root.AddCommand(retryCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(listCmd())
	root.AddCommand(tokenCmd())
	return root
}
