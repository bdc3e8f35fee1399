package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Output prints API results as text or JSON.
type Output struct {
	format string
	w      io.Writer
}

func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}

	switch v := data.(type) {
	case []Player:
		o.printLadder(v)
	case *Player:
		o.printPlayer(v)
	case []Game:
		o.printGames(v)
	case []Challenge:
		o.printChallenges(v)
	case *Stats:
		o.printStats(v)
	case *Health:
		fmt.Fprintf(o.w, "%s (database %s)\n", v.Message, v.Database)
	default:
		o.printJSON(data)
	}
}

// PrintMessage prints a one-line result such as a created id.
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(o.w, msg)
}

// PrintLines prints bot replies, one per line.
func (o *Output) PrintLines(lines []string) {
	if o.format == "json" {
		o.printJSON(map[string][]string{"lines": lines})
		return
	}
	for _, line := range lines {
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printLadder(players []Player) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players yet.")
		return
	}
	for _, line := range LadderLines(players) {
		fmt.Fprintln(o.w, line)
	}
}

// LadderLines renders one "[rank] name wins-losses (rating)" line per player.
func LadderLines(players []Player) []string {
	lines := make([]string, 0, len(players))
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("[%d] %s %d-%d (%d)", p.Rank, p.Name, p.NumWins, p.NumLosses, p.Rating))
	}
	return lines
}

func (o *Output) printPlayer(p *Player) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Rank:\t%d\n", p.Rank)
	fmt.Fprintf(tw, "Rating:\t%d\n", p.Rating)
	fmt.Fprintf(tw, "Record:\t%d-%d\n", p.NumWins, p.NumLosses)
	fmt.Fprintf(tw, "Joined:\t%s\n", p.TimeCreated)
	_ = tw.Flush()
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No games.")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tWINNER\tLOSER\tSCORE")
	for _, g := range games {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d-%d\n", g.ID, g.TimeCreated, g.Winner, g.Loser, g.WinnerScore, g.LoserScore)
	}
	_ = tw.Flush()
}

func (o *Output) printChallenges(challenges []Challenge) {
	if len(challenges) == 0 {
		fmt.Fprintln(o.w, "No challenges.")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tCHALLENGER\tCHALLENGED\tGAME")
	for _, c := range challenges {
		game := "open"
		if c.GameID != nil {
			game = fmt.Sprintf("#%d", *c.GameID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.TimeCreated, c.Challenger, c.Challenged, game)
	}
	_ = tw.Flush()
}

func (o *Output) printStats(s *Stats) {
	var b strings.Builder
	fmt.Fprintf(&b, "Players:          %d\n", s.TotalPlayers)
	fmt.Fprintf(&b, "Games:            %d\n", s.TotalGames)
	fmt.Fprintf(&b, "Open challenges:  %d\n", s.OpenChallenges)
	fmt.Fprintf(&b, "Games last week:  %d (week before: %d)\n", s.GamesLast7Days, s.GamesPrevious7Days)
	fmt.Fprint(o.w, b.String())
}
