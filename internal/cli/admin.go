package cli

import (
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Contract administration commands",
	}

	cmd.AddCommand(newAdminShowCmd())
	cmd.AddCommand(newAdminOwnerCmd())
	cmd.AddCommand(newAdminTransferCmd())
	cmd.AddCommand(newBlacklistCmd())

	return cmd
}

func newAdminShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AdminResult

			if err := client.Get("/api/v1/contract/admin", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminOwnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owner",
		Short: "Show the contract owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OwnerResult

			if err := client.Get("/api/v1/contract/owner", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminTransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <address>",
		Short: "Transfer adminship to another address",
		Long: `Transfer adminship to another address.

Only the current admin may transfer. While no admin is set,
any authenticated identity may claim adminship.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"admin_address": args[0]}

			if err := client.Put("/api/v1/contract/admin", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Admin transferred to " + args[0])
			return nil
		},
	}
}

func newBlacklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Blacklist commands",
	}

	cmd.AddCommand(newBlacklistListCmd())
	cmd.AddCommand(newBlacklistAddCmd())
	cmd.AddCommand(newBlacklistRemoveCmd())

	return cmd
}

func newBlacklistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blacklisted addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BlacklistResult

			if err := client.Get("/api/v1/contract/blacklist", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBlacklistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <address>",
		Short: "Add an address to the blacklist (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"address": args[0]}

			if err := client.Post("/api/v1/contract/blacklist", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Blacklisted " + args[0])
			return nil
		},
	}
}

func newBlacklistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <address>",
		Short: "Remove an address from the blacklist (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/contract/blacklist/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Removed " + args[0] + " from blacklist")
			return nil
		},
	}
}
