package cron

import (
	"context"
	"testing"
	"time"

	"core/cache"
	"core/events"
	"core/models"
	"core/services"
	"core/store"
	"core/testutil"
	"core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	sets int
}

func (c *countingCache) Get(context.Context) ([]models.LadderEntry, bool, error) {
	return nil, false, nil
}

func (c *countingCache) Version(context.Context) (cache.Version, error) {
	return 0, nil
}

func (c *countingCache) Set(context.Context, cache.Version, []models.LadderEntry) (bool, error) {
	c.sets++
	return true, nil
}

func (c *countingCache) Invalidate(context.Context) error {
	return nil
}

func TestRunNow(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.SeedPlayer(t, db, "a", 1200, testutil.Epoch)
	b := testutil.SeedPlayer(t, db, "b", 1200, testutil.Epoch)

	st := store.New(db)
	_, err := st.CreateChallenge(context.Background(), a, b, testutil.Epoch, nil)
	require.NoError(t, err)

	recorder := events.NewRecorder()
	lb := &countingCache{}
	deps := services.Deps{
		Store:     st,
		Clock:     utils.NewFixedClock(testutil.Epoch.Add(30 * 24 * time.Hour)),
		Publisher: recorder,
		Cache:     lb,
		Logger:    testutil.NopLogger(),
	}

	s := NewScheduler(
		services.NewStaleChallengeService(deps, 7*24*time.Hour),
		services.NewLadderService(deps),
		testutil.NopLogger(),
	)
	s.RunNow()

	assert.Equal(t, []string{events.ChallengeStale}, recorder.Types())
	assert.Equal(t, 1, lb.sets)
}

func TestStartStop(t *testing.T) {
	db := testutil.NewDB(t)
	deps := services.Deps{Store: store.New(db), Logger: testutil.NopLogger()}

	s := NewScheduler(
		services.NewStaleChallengeService(deps, time.Hour),
		services.NewLadderService(deps),
		testutil.NopLogger(),
	)

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}
