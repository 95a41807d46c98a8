package cli

import (
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchStartCmd())
	cmd.AddCommand(newMatchRespondCmd())
	cmd.AddCommand(newMatchByHostCmd())
	cmd.AddCommand(newMatchByOpponentCmd())

	return cmd
}

func newMatchStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <opponent> <move>",
		Short: "Start a match against an opponent",
		Long: `Start a match against an opponent, committing your move.

The move must be one of: rock, paper, scissors.
Starting a second match against the same opponent replaces the first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"opponent":   args[0],
				"first_move": args[1],
			}
			var result Match

			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}

func newMatchRespondCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respond <host> <move>",
		Short: "Respond to a match hosted against you",
		Long: `Respond to a match that the given host started against you.

The move must be one of: rock, paper, scissors.
The match resolves immediately and is removed from the store.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"second_move": args[1]}
			var result RespondResult

			if err := client.Post("/api/v1/matches/"+args[0]+"/respond", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}

func newMatchByHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-host <address>",
		Short: "List open matches started by a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchList

			if err := client.Get("/api/v1/matches/by-host/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchByOpponentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-opponent <address>",
		Short: "List open matches awaiting an opponent's response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchList

			if err := client.Get("/api/v1/matches/by-opponent/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
