package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Config holds the ladderctl settings.
type Config struct {
	ServerURL string
	Output    string
	Timeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		ServerURL: "http://localhost:8080",
		Output:    "text",
		Timeout:   30 * time.Second,
	}
}

type app struct {
	cfg    Config
	client *Client
}

func (a *app) output(cmd *cobra.Command) *Output {
	return NewOutput(a.cfg.Output, cmd.OutOrStdout())
}

// NewRootCmd builds the ladderctl command tree. cfg supplies the flag
// defaults.
func NewRootCmd(cfg Config) *cobra.Command {
	a := &app{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "ladderctl",
		Short: "CLI for the ping-pong ladder API",
		Long: `ladderctl talks to the ladder HTTP API.

It registers players, games and challenges, shows the ladder, and understands
the chat bot's free-text commands through "ladderctl say".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Output != "text" && a.cfg.Output != "json" {
				return fmt.Errorf("unknown output format %q (want text or json)", a.cfg.Output)
			}
			a.client = NewClient(a.cfg.ServerURL, a.cfg.Timeout)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfg.ServerURL, "server", a.cfg.ServerURL, "Server URL (env: LADDER_SERVER_URL)")
	rootCmd.PersistentFlags().StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "HTTP timeout")

	rootCmd.AddCommand(newPlayerCmd(a))
	rootCmd.AddCommand(newLadderCmd(a))
	rootCmd.AddCommand(newGameCmd(a))
	rootCmd.AddCommand(newGamesCmd(a))
	rootCmd.AddCommand(newChallengeCmd(a))
	rootCmd.AddCommand(newChallengesCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))
	rootCmd.AddCommand(newHealthCmd(a))
	rootCmd.AddCommand(newSayCmd(a))

	return rootCmd
}
