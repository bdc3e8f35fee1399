package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"core"
	"core/models"
	"core/services"
	"core/store"
	"core/utils"

	"gorm.io/gorm"
)

// DefaultStart is when the generated ladder history begins.
var DefaultStart = time.Date(2015, 12, 6, 9, 0, 0, 0, time.UTC)

var playerNames = []string{
	"kumanan", "colin", "arjun", "mei", "tobias",
	"sasha", "ravi", "ingrid", "dmitri", "lucia",
}

// Options control the size and shape of the generated ladder.
type Options struct {
	Players    int
	Games      int
	Challenges int
	Seed       uint64
	Start      time.Time
}

func DefaultOptions() Options {
	return Options{
		Players:    len(playerNames),
		Games:      50,
		Challenges: 8,
		Seed:       1,
		Start:      DefaultStart,
	}
}

// Summary counts what GenerateTestData created.
type Summary struct {
	Players         int
	Games           int
	OpenChallenges  int
	ResolvedByGames int
}

// Fixtures builds a demo ladder through the real services, so ratings and
// challenge resolution follow the same rules as the API.
type Fixtures struct {
	db     *gorm.DB
	log    *slog.Logger
	clock  *utils.FixedClock
	rng    *rand.Rand
	opts   Options
	player *services.PlayerService
	game   *services.GameService
	chal   *services.ChallengeService
}

func NewFixtures(db *gorm.DB, log *slog.Logger, opts Options) *Fixtures {
	if opts.Players <= 0 || opts.Players > len(playerNames) {
		opts.Players = len(playerNames)
	}
	if opts.Start.IsZero() {
		opts.Start = DefaultStart
	}

	clock := utils.NewFixedClock(opts.Start)
	deps := services.Deps{
		Store:  store.New(db),
		Clock:  clock,
		Logger: log,
	}
	return &Fixtures{
		db:     db,
		log:    log,
		clock:  clock,
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		opts:   opts,
		player: services.NewPlayerService(deps, core.DefaultRating),
		game:   services.NewGameService(deps),
		chal:   services.NewChallengeService(deps),
	}
}

// GenerateTestData registers players, then alternates challenges and games
// over the following days.
func (f *Fixtures) GenerateTestData(ctx context.Context) (*Summary, error) {
	f.log.Info("starting fixtures generation", slog.Int("players", f.opts.Players), slog.Int("games", f.opts.Games))

	names, err := f.generatePlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate players: %w", err)
	}

	summary := &Summary{Players: len(names)}

	resolved, err := f.generateGames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to generate games: %w", err)
	}
	summary.Games = f.opts.Games
	summary.ResolvedByGames = resolved

	open, err := f.generateChallenges(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenges: %w", err)
	}
	summary.OpenChallenges = open

	f.log.Info("fixtures generated",
		slog.Int("players", summary.Players),
		slog.Int("games", summary.Games),
		slog.Int("open_challenges", summary.OpenChallenges),
	)
	return summary, nil
}

func (f *Fixtures) generatePlayers(ctx context.Context) ([]string, error) {
	names := playerNames[:f.opts.Players]
	for _, name := range names {
		if _, err := f.player.CreatePlayer(ctx, services.CreatePlayerInput{Name: name}); err != nil {
			return nil, fmt.Errorf("player %s: %w", name, err)
		}
		f.clock.Advance(time.Duration(1+f.rng.IntN(30)) * time.Minute)
	}
	return names, nil
}

// generateGames plays opts.Games games. Roughly a third are preceded by a
// challenge, which the game then resolves.
func (f *Fixtures) generateGames(ctx context.Context, names []string) (int, error) {
	resolved := 0
	for i := 0; i < f.opts.Games; i++ {
		winner, loser := f.pair(names)

		if f.rng.IntN(3) == 0 {
			issued, err := f.issue(ctx, winner, loser)
			if err != nil {
				return resolved, err
			}
			if issued {
				resolved++
			}
			f.clock.Advance(time.Duration(1+f.rng.IntN(6)) * time.Hour)
		}

		winnerScore, loserScore := f.score()
		_, err := f.game.RegisterGame(ctx, services.RegisterGameInput{
			Winner:      winner,
			Loser:       loser,
			WinnerScore: winnerScore,
			LoserScore:  loserScore,
		})
		if err != nil {
			return resolved, fmt.Errorf("game %d (%s beat %s): %w", i+1, winner, loser, err)
		}
		f.clock.Advance(time.Duration(2+f.rng.IntN(10)) * time.Hour)
	}
	return resolved, nil
}

// generateChallenges leaves opts.Challenges challenges open at the end.
func (f *Fixtures) generateChallenges(ctx context.Context, names []string) (int, error) {
	open := 0
	for attempts := 0; open < f.opts.Challenges && attempts < f.opts.Challenges*5; attempts++ {
		challenger, challenged := f.pair(names)
		issued, err := f.issue(ctx, challenger, challenged)
		if err != nil {
			return open, err
		}
		if issued {
			open++
		}
		f.clock.Advance(time.Duration(10+f.rng.IntN(50)) * time.Minute)
	}
	return open, nil
}

// issue returns false when the pair already has an open challenge.
func (f *Fixtures) issue(ctx context.Context, challenger, challenged string) (bool, error) {
	_, err := f.chal.IssueChallenge(ctx, services.IssueChallengeInput{
		Challenger: challenger,
		Challenged: challenged,
	})
	if errors.Is(err, models.ErrOpenChallengeExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("challenge %s vs %s: %w", challenger, challenged, err)
	}
	return true, nil
}

func (f *Fixtures) pair(names []string) (string, string) {
	a := f.rng.IntN(len(names))
	b := f.rng.IntN(len(names) - 1)
	if b >= a {
		b++
	}
	return names[a], names[b]
}

func (f *Fixtures) score() (int, int) {
	if f.rng.IntN(4) == 0 {
		return utils.ShortGamePoints, f.rng.IntN(utils.ShortGamePoints)
	}
	return utils.LongGamePoints, f.rng.IntN(utils.LongGamePoints)
}

// ClearAllData removes every challenge, game and player.
func (f *Fixtures) ClearAllData(ctx context.Context) error {
	f.log.Info("clearing all fixture data")

	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Challenge{}, &models.Game{}, &models.Player{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}
		return nil
	})
}
