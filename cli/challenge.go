package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChallengeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Challenge commands",
	}

	cmd.AddCommand(newChallengeAddCmd(a))

	return cmd
}

func newChallengeAddCmd(a *app) *cobra.Command {
	var gameID uint

	cmd := &cobra.Command{
		Use:   "add CHALLENGER CHALLENGED",
		Short: "Issue a challenge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g *uint
			if cmd.Flags().Changed("game") {
				g = &gameID
			}

			id, err := a.client.AddChallenge(cmd.Context(), args[0], args[1], g)
			if err != nil {
				return err
			}

			a.output(cmd).PrintMessage(fmt.Sprintf("Added challenge %d", id))
			return nil
		},
	}

	cmd.Flags().UintVar(&gameID, "game", 0, "Game that already settled this challenge")

	return cmd
}

func newChallengesCmd(a *app) *cobra.Command {
	var (
		all    bool
		player string
	)

	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "List open challenges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			challenges, err := a.client.Challenges(cmd.Context(), all, player)
			if err != nil {
				return err
			}

			a.output(cmd).Print(challenges)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed challenges")
	cmd.Flags().StringVar(&player, "player", "", "Only challenges this player issued or received")

	return cmd
}
