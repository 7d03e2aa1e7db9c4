package main

import (
	"encoding/json"
	"time"

	"topreparateurs/internal/adapter/http/dto/response"
	"topreparateurs/internal/app"

	"github.com/spf13/cobra"
)

func holdsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holds",
		Short: "Inspect and release payment holds",
	}

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Release every hold whose delay has elapsed",
		Long: `Runs one release pass: holds past their release date are paid out to the
repairer unless the quote is disputed. Safe to run concurrently with the API.`,
		RunE: runHoldsSweep,
	}
	sweep.Flags().IntP("limit", "n", 0, "Maximum holds to examine (0 uses the configured limit)")
	cmd.AddCommand(sweep)
	return cmd
}

func runHoldsSweep(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Hold.SweepLimit
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	res, err := a.Holds.ReleaseDue(cmd.Context(), time.Now().UTC(), limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(response.FromSweepResult(res))
}
