package cache

import (
	"context"

	"core/models"
)

// LeaderboardCache holds the most recently computed leaderboard. Writers
// invalidate it after every committed change.
//
// Each invalidation advances a version. A reader takes the version before
// reading storage and hands it back to Set, which stores nothing if an
// invalidation happened in between.
type LeaderboardCache interface {
	// Get reports false when nothing is cached.
	Get(ctx context.Context) ([]models.LadderEntry, bool, error)
	Version(ctx context.Context) (Version, error)
	// Set reports whether entries were stored.
	Set(ctx context.Context, version Version, entries []models.LadderEntry) (bool, error)
	Invalidate(ctx context.Context) error
}

// Version counts invalidations.
type Version int64

// Nop never caches anything.
type Nop struct{}

var _ LeaderboardCache = Nop{}

func (Nop) Get(context.Context) ([]models.LadderEntry, bool, error) {
	return nil, false, nil
}

func (Nop) Version(context.Context) (Version, error) {
	return 0, nil
}

func (Nop) Set(context.Context, Version, []models.LadderEntry) (bool, error) {
	return false, nil
}

func (Nop) Invalidate(context.Context) error {
	return nil
}
