package main

import (
	"context"
	"fmt"

	"topreparateurs/internal/config"
	"topreparateurs/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

// connectTables is replaced in tests.
var connectTables = func(ctx context.Context, cfg config.Config) (database.TableCreator, error) {
	return database.ConnectDynamoDB(ctx, cfg.AWS)
}

func tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Manage DynamoDB tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create missing tables and indexes",
		RunE:  runTablesCreate,
	})
	return cmd
}

func runTablesCreate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	api, err := connectTables(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	results, err := database.EnsureTables(cmd.Context(), api, cfg.Tables)
	for _, r := range results {
		state := "exists"
		if r.Created {
			state = "created"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", r.Name, state)
	}
	return err
}
