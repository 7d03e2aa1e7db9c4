// Command repairctl runs operator tasks against the repair service storage.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"topreparateurs/internal/config"
	"topreparateurs/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "repairctl",
		Short:         "Operator tool for the TopReparateurs repair service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(tablesCmd())
	root.AddCommand(holdsCmd())
	root.AddCommand(tokenCmd())
	root.AddCommand(configCmd())
	return root
}

// loadConfig reads configuration and routes logs to stderr so command output stays parseable.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	slog.SetDefault(logger.New(&logger.Config{Level: cfg.Log.Level, Format: "text"}, cmd.ErrOrStderr()))
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
