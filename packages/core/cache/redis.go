package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"core/models"

	"github.com/redis/go-redis/v9"
)

// Redis stores the leaderboard as one JSON document.
type Redis struct {
	client *redis.Client
	cfg    Config
}

var _ LeaderboardCache = (*Redis)(nil)

func NewRedis(cfg Config) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisWithClient(client, cfg), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, cfg Config) *Redis {
	return &Redis{
		client: client,
		cfg:    cfg,
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// cachedEntry keeps the player id, which the wire model hides.
type cachedEntry struct {
	Rank        int       `json:"rank"`
	PlayerID    uint      `json:"player_id"`
	Name        string    `json:"name"`
	Rating      int       `json:"rating"`
	TimeCreated time.Time `json:"time_created"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
}

func (r *Redis) Get(ctx context.Context) ([]models.LadderEntry, bool, error) {
	data, err := r.client.Get(ctx, leaderboardKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cached []cachedEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, err
	}

	entries := make([]models.LadderEntry, len(cached))
	for i, c := range cached {
		entries[i] = models.LadderEntry{
			Rank: c.Rank,
			PlayerStanding: models.PlayerStanding{
				Player: models.Player{
					ID:          c.PlayerID,
					Name:        c.Name,
					Rating:      c.Rating,
					TimeCreated: c.TimeCreated.UTC(),
				},
				Counts: models.GameCounts{Wins: c.Wins, Losses: c.Losses},
			},
		}
	}
	return entries, true, nil
}

func (r *Redis) Version(ctx context.Context) (Version, error) {
	return parseVersion(r.client.Get(ctx, leaderboardVersionKey()))
}

// parseVersion reads a missing version key as zero.
func parseVersion(cmd *redis.StringCmd) (Version, error) {
	v, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return Version(v), err
}

// Set stores entries only while the version is still the one the caller
// read them under.
func (r *Redis) Set(ctx context.Context, version Version, entries []models.LadderEntry) (bool, error) {
	cached := make([]cachedEntry, len(entries))
	for i, e := range entries {
		cached[i] = cachedEntry{
			Rank:        e.Rank,
			PlayerID:    e.Player.ID,
			Name:        e.Player.Name,
			Rating:      e.Player.Rating,
			TimeCreated: e.Player.TimeCreated,
			Wins:        e.Counts.Wins,
			Losses:      e.Counts.Losses,
		}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return false, err
	}

	stored := false
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := parseVersion(tx.Get(ctx, leaderboardVersionKey()))
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, leaderboardKey(), data, r.cfg.LeaderboardTTL)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, leaderboardVersionKey())
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored, nil
}

// Invalidate drops the cached leaderboard and advances the version.
func (r *Redis) Invalidate(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, leaderboardVersionKey())
		pipe.Del(ctx, leaderboardKey())
		return nil
	})
	return err
}
