package core

import (
	"log/slog"
	"time"

	"core/cache"
	"core/cron"
	"core/events"
	"core/handlers"
	"core/services"
	"core/store"
	"core/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options tunes the module. Zero values fall back to the ladder defaults.
type Options struct {
	DefaultRating     int
	DefaultGameCount  int
	StaleChallengeAge time.Duration

	Clock     utils.Clock
	Publisher events.Publisher
	Cache     cache.LeaderboardCache
	Logger    *slog.Logger
}

const (
	DefaultRating            = 1200
	DefaultStaleChallengeAge = 7 * 24 * time.Hour
)

type Module struct {
	Store                 *store.Store
	PlayerHandler         *handlers.PlayerHandler
	PlayerService         *services.PlayerService
	GameHandler           *handlers.GameHandler
	GameService           *services.GameService
	ChallengeHandler      *handlers.ChallengeHandler
	ChallengeService      *services.ChallengeService
	LadderService         *services.LadderService
	StatsHandler          *handlers.StatsHandler
	StatsService          *services.StatsService
	HealthHandler         *handlers.HealthHandler
	StaleChallengeService *services.StaleChallengeService
	Scheduler             *cron.Scheduler
	logger                *slog.Logger
}

func NewModule(db *gorm.DB, opts Options) *Module {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DefaultRating < 1 {
		opts.DefaultRating = DefaultRating
	}
	if opts.DefaultGameCount < 1 {
		opts.DefaultGameCount = services.DefaultGameCount
	}
	if opts.StaleChallengeAge <= 0 {
		opts.StaleChallengeAge = DefaultStaleChallengeAge
	}

	handlers.SetupValidator()

	st := store.New(db)
	deps := services.Deps{
		Store:     st,
		Clock:     opts.Clock,
		Publisher: opts.Publisher,
		Cache:     opts.Cache,
		Logger:    opts.Logger,
	}

	ladderService := services.NewLadderService(deps)

	playerService := services.NewPlayerService(deps, opts.DefaultRating)
	playerHandler := handlers.NewPlayerHandler(playerService, ladderService, opts.Logger)

	gameService := services.NewGameService(deps)
	gameHandler := handlers.NewGameHandler(gameService, ladderService, opts.Logger, opts.DefaultGameCount)

	challengeService := services.NewChallengeService(deps)
	challengeHandler := handlers.NewChallengeHandler(challengeService, ladderService, opts.Logger)

	statsService := services.NewStatsService(deps)
	statsHandler := handlers.NewStatsHandler(statsService, opts.Logger)

	healthHandler := handlers.NewHealthHandler(st, opts.Logger)

	staleChallengeService := services.NewStaleChallengeService(deps, opts.StaleChallengeAge)
	scheduler := cron.NewScheduler(staleChallengeService, ladderService, opts.Logger)

	return &Module{
		Store:                 st,
		PlayerHandler:         playerHandler,
		PlayerService:         playerService,
		GameHandler:           gameHandler,
		GameService:           gameService,
		ChallengeHandler:      challengeHandler,
		ChallengeService:      challengeService,
		LadderService:         ladderService,
		StatsHandler:          statsHandler,
		StatsService:          statsService,
		HealthHandler:         healthHandler,
		StaleChallengeService: staleChallengeService,
		Scheduler:             scheduler,
		logger:                opts.Logger,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetPlayers)
		players.POST("", m.PlayerHandler.CreatePlayer)
		players.GET("/:name", m.PlayerHandler.GetPlayer)
	}

	games := r.Group("/games")
	{
		games.GET("", m.GameHandler.GetGames)
		games.POST("", m.GameHandler.CreateGame)
	}

	challenges := r.Group("/challenges")
	{
		challenges.GET("", m.ChallengeHandler.GetChallenges)
		challenges.POST("", m.ChallengeHandler.CreateChallenge)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
	r.GET("/health", m.HealthHandler.Health)
}

// StartScheduler starts the maintenance jobs
func (m *Module) StartScheduler() error {
	m.logger.Info("starting core module scheduler")
	return m.Scheduler.Start()
}

// StopScheduler stops the maintenance jobs
func (m *Module) StopScheduler() {
	m.logger.Info("stopping core module scheduler")
	m.Scheduler.Stop()
}

// RunJobsNow runs every maintenance job once
func (m *Module) RunJobsNow() {
	m.logger.Info("manually triggering maintenance jobs")
	m.Scheduler.RunNow()
}
