package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"pingpong-ladder/config"
	"pingpong-ladder/migrations"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var migrator *migrations.Migrator

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the ladder database schema",
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

			migrator, err = migrations.NewMigrator(config.DB, log)
			if err != nil {
				return err
			}
			migrator.AddMigration(migrations.GetLadderMigrations()...)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return config.CloseDatabase()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := migrator.Migrate()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
			return nil
		},
	})

	var steps int
	rollback := &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the latest batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			reverted, err := migrator.Rollback(steps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s)\n", reverted)
			return nil
		},
	}
	rollback.Flags().IntVar(&steps, "steps", 1, "Number of batches to roll back")
	root.AddCommand(rollback)

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := migrator.Status()
			if err != nil {
				return err
			}
			pending, err := migrator.Pending()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BATCH\tNAME")
			for _, m := range applied {
				fmt.Fprintf(tw, "%d\t%s\n", m.Batch, m.Name)
			}
			for _, name := range pending {
				fmt.Fprintf(tw, "-\t%s (pending)\n", name)
			}
			return tw.Flush()
		},
	})

	return root
}
