package main

import (
	"fmt"
	"os"

	"pingpong-ladder/config"
	"pingpong-ladder/fixtures"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		fx   *fixtures.Fixtures
		opts = fixtures.DefaultOptions()
	)

	root := &cobra.Command{
		Use:          "fixtures",
		Short:        "Generate or clear demo ladder data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := config.NewLogger(cfg, os.Stderr)

			if err := config.ConnectDatabase(cfg, log); err != nil {
				return err
			}
			fx = fixtures.NewFixtures(config.DB, log, opts)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return config.CloseDatabase()
		},
	}

	root.PersistentFlags().IntVar(&opts.Players, "players", opts.Players, "Number of players")
	root.PersistentFlags().IntVar(&opts.Games, "games", opts.Games, "Number of games")
	root.PersistentFlags().IntVar(&opts.Challenges, "challenges", opts.Challenges, "Open challenges left at the end")
	root.PersistentFlags().Uint64Var(&opts.Seed, "seed", opts.Seed, "Random seed")

	generate := func(cmd *cobra.Command) error {
		summary, err := fx.GenerateTestData(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d players, %d games (%d settling a challenge), %d open challenges\n",
			summary.Players, summary.Games, summary.ResolvedByGames, summary.OpenChallenges)
		return nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate a demo ladder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all players, games and challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fx.ClearAllData(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All fixture data cleared")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "regenerate",
		Short: "Clear and generate again",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fx.ClearAllData(cmd.Context()); err != nil {
				return err
			}
			return generate(cmd)
		},
	})

	return root
}
