package cache

import "time"

// Config holds Redis connection and expiry settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	PoolSize     int
	MinIdleConns int

	// LeaderboardTTL bounds how long a cached leaderboard survives a missed
	// invalidation.
	LeaderboardTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379/0",
		PoolSize:       10,
		MinIdleConns:   2,
		LeaderboardTTL: 30 * time.Second,
	}
}
