package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	helpPattern   = regexp.MustCompile(`(?i)^(?:help|commands)`)
	ladderPattern = regexp.MustCompile(`^(?:ladder|ratings|rankings)`)
	playerPattern = regexp.MustCompile(`^add\s+player\s+(\w+)`)
	gamePattern   = regexp.MustCompile(`^(\w+)\s+beat\s+(\w+)\s+(\d+)\s*(?:to|-)\s*(\d+)`)
)

// Bot answers the free-text commands of the ladder chat bot.
type Bot struct {
	client     *Client
	nickname   string
	maintainer string
}

func NewBot(client *Client, nickname, maintainer string) *Bot {
	return &Bot{client: client, nickname: nickname, maintainer: maintainer}
}

// Process runs one command and returns the reply lines.
func (b *Bot) Process(ctx context.Context, command string) []string {
	command = strings.TrimSpace(command)

	if helpPattern.MatchString(command) {
		return b.help()
	}
	if ladderPattern.MatchString(command) {
		return b.ladder(ctx)
	}
	if m := playerPattern.FindStringSubmatch(command); m != nil {
		return b.addPlayer(ctx, m[1])
	}
	if m := gamePattern.FindStringSubmatch(command); m != nil {
		winnerScore, err1 := strconv.Atoi(m[3])
		loserScore, err2 := strconv.Atoi(m[4])
		if err1 == nil && err2 == nil {
			return b.addGame(ctx, m[1], m[2], winnerScore, loserScore)
		}
	}

	return []string{fmt.Sprintf(`Command not recognized! Type "%s help" for more info.`, b.nickname)}
}

func (b *Bot) help() []string {
	return []string{
		fmt.Sprintf(`Type "%s: COMMAND". Commands are:`, b.nickname),
		"Add a player: add player PLAYER_NAME",
		"Add a game: WINNER_NAME beat LOSER_NAME WINNER_SCORE-LOSER_SCORE",
		"Show all players ordered by rating: ladder",
	}
}

func (b *Bot) addPlayer(ctx context.Context, name string) []string {
	if _, err := b.client.AddPlayer(ctx, name, nil); err != nil {
		return b.failure(err)
	}
	return []string{"Added player " + name}
}

func (b *Bot) addGame(ctx context.Context, winner, loser string, winnerScore, loserScore int) []string {
	if _, err := b.client.AddGame(ctx, winner, loser, winnerScore, loserScore); err != nil {
		return b.failure(err)
	}
	return []string{"Added game"}
}

func (b *Bot) ladder(ctx context.Context) []string {
	players, err := b.client.Players(ctx)
	if err != nil {
		return b.failure(err)
	}
	return LadderLines(players)
}

// failure shows request errors to the user and hides server faults behind
// the maintainer's name.
func (b *Bot) failure(err error) []string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && !apiErr.ServerFault() {
		return []string{"Error: " + apiErr.Error()}
	}
	return []string{fmt.Sprintf("Error: contact the maintainer %s", b.maintainer)}
}
