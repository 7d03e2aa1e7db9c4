package main

import (
	"fmt"
	"time"

	"topreparateurs/internal/adapter/http/middleware"
	"topreparateurs/internal/domain/entities"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with API bearer tokens",
	}

	mint := &cobra.Command{
		Use:   "mint",
		Short: "Sign a bearer token with JWT_SECRET",
		RunE:  runTokenMint,
	}
	mint.Flags().String("sub", "", "Subject (user id)")
	mint.Flags().String("role", string(entities.RoleClient), "Role: client, repairer or admin")
	mint.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = mint.MarkFlagRequired("sub")
	cmd.AddCommand(mint)
	return cmd
}

func runTokenMint(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sub, _ := cmd.Flags().GetString("sub")
	role, _ := cmd.Flags().GetString("role")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	actor := entities.Actor{ID: sub, Role: entities.Role(role)}
	if actor.Role == entities.RoleSystem {
		return fmt.Errorf("role %q cannot be minted", role)
	}
	token, exp, err := middleware.GenerateToken(middleware.AuthConfig{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.JWTIssuer}, actor, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
	return nil
}
