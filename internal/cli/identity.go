package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIdentityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Identity management commands",
	}

	cmd.AddCommand(newIdentityClaimCmd())
	cmd.AddCommand(newIdentityRegisterCmd())
	cmd.AddCommand(newIdentityLoginCmd())
	cmd.AddCommand(newIdentityWhoamiCmd())

	return cmd
}

func newIdentityClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim <address>",
		Short: "Claim an unregistered address for this session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"address": args[0]}
			var result AuthResult

			if err := client.Post("/api/v1/identities/claim", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}

func newIdentityRegisterCmd() *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "register <address>",
		Short: "Register an address with a passphrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("--passphrase is required")
			}

			req := map[string]string{
				"address":    args[0],
				"passphrase": passphrase,
			}
			var result AuthResult

			if err := client.Post("/api/v1/identities/register", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Passphrase (required)")
	_ = cmd.MarkFlagRequired("passphrase")

	return cmd
}

func newIdentityLoginCmd() *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "login <address>",
		Short: "Login with a registered address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("--passphrase is required")
			}

			req := map[string]string{
				"address":    args[0],
				"passphrase": passphrase,
			}
			var result AuthResult

			if err := client.Post("/api/v1/identities/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Passphrase (required)")
	_ = cmd.MarkFlagRequired("passphrase")

	return cmd
}

func newIdentityWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Identity

			if err := client.Get("/api/v1/identities/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
