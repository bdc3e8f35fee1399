package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameAddCmd(a))

	return cmd
}

func newGameAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add WINNER LOSER WINNER_SCORE LOSER_SCORE",
		Short:   "Register a game",
		Example: "  ladderctl game add kumanan colin 21 19",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			winnerScore, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid winner score %q", args[2])
			}
			loserScore, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid loser score %q", args[3])
			}

			id, err := a.client.AddGame(cmd.Context(), args[0], args[1], winnerScore, loserScore)
			if err != nil {
				return err
			}

			a.output(cmd).PrintMessage(fmt.Sprintf("Added game %d", id))
			return nil
		},
	}
}

func newGamesCmd(a *app) *cobra.Command {
	var (
		count  int
		player string
	)

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List recent games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := a.client.Games(cmd.Context(), count, player)
			if err != nil {
				return err
			}

			a.output(cmd).Print(games)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of games (default: server setting)")
	cmd.Flags().StringVar(&player, "player", "", "Only games this player won or lost")

	return cmd
}
