package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSayCmd(a *app) *cobra.Command {
	var nickname, maintainer string

	cmd := &cobra.Command{
		Use:   "say COMMAND...",
		Short: "Run a chat bot command",
		Long: `Runs one of the chat bot's free-text commands:

  add player NAME
  WINNER beat LOSER WINNER_SCORE-LOSER_SCORE   (or "21 to 19")
  ladder | ratings | rankings
  help | commands`,
		Example: `  ladderctl say kumanan beat colin 21-19`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bot := NewBot(a.client, nickname, maintainer)
			lines := bot.Process(cmd.Context(), strings.Join(args, " "))
			a.output(cmd).PrintLines(lines)
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "pongbot", "Bot name shown in help")
	cmd.Flags().StringVar(&maintainer, "maintainer", "<UNKNOWN>", "Who to contact on server errors")

	return cmd
}
