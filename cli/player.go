package cli

import (
	"github.com/spf13/cobra"
)

func newPlayerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayerAddCmd(a))
	cmd.AddCommand(newPlayerShowCmd(a))

	return cmd
}

func newPlayerAddCmd(a *app) *cobra.Command {
	var rating int

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r *int
			if cmd.Flags().Changed("rating") {
				r = &rating
			}

			name, err := a.client.AddPlayer(cmd.Context(), args[0], r)
			if err != nil {
				return err
			}

			a.output(cmd).PrintMessage("Added player " + name)
			return nil
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 0, "Initial rating (default: server setting)")

	return cmd
}

func newPlayerShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a player's rank, rating and record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := a.client.Player(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			a.output(cmd).Print(player)
			return nil
		},
	}
}

func newLadderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ladder",
		Aliases: []string{"ratings", "rankings"},
		Short:   "Show all players ordered by rating",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := a.client.Players(cmd.Context())
			if err != nil {
				return err
			}

			a.output(cmd).Print(players)
			return nil
		},
	}
}
