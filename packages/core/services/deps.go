package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"core/cache"
	"core/events"
	"core/models"
	"core/store"
	"core/utils"
)

// Deps are the collaborators every service shares. Only Store is required.
type Deps struct {
	Store     *store.Store
	Clock     utils.Clock
	Publisher events.Publisher
	Cache     cache.LeaderboardCache
	Logger    *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Clock == nil {
		d.Clock = utils.NewRealClock()
	}
	if d.Publisher == nil {
		d.Publisher = events.NewLogPublisher(d.Logger)
	}
	if d.Cache == nil {
		d.Cache = cache.Nop{}
	}
	return d
}

// timestamp is the stored creation time: the given time, or now.
func (d Deps) timestamp(t *time.Time) time.Time {
	if t != nil {
		return t.UTC().Truncate(time.Second)
	}
	return utils.NowSeconds(d.Clock)
}

// committed runs after a write transaction commits. Failures are logged; the
// write already happened.
func (d Deps) committed(ctx context.Context, evts ...events.Event) {
	if err := d.Cache.Invalidate(ctx); err != nil {
		d.Logger.WarnContext(ctx, "leaderboard cache invalidation failed", slog.Any("error", err))
	}
	d.publish(ctx, evts...)
}

func (d Deps) publish(ctx context.Context, evts ...events.Event) {
	for _, e := range evts {
		if err := d.Publisher.Publish(ctx, e); err != nil {
			d.Logger.WarnContext(ctx, "event publish failed",
				slog.String("type", e.Type),
				slog.Any("error", err),
			)
		}
	}
}

// resolvePlayer looks up name for field. Unknown or empty names are recorded
// on verr and return nil without an error.
func resolvePlayer(ctx context.Context, st *store.Store, verr *ValidationError, field, name string) (*models.Player, error) {
	if name == "" {
		verr.Add(field, models.ErrMissingRequiredField, MsgMissingRequired)
		return nil, nil
	}

	player, err := st.GetPlayerByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrPlayerNotFound) {
			verr.Add(field, models.ErrUnknownPlayer, unknownPlayerMessage(name))
			return nil, nil
		}
		return nil, err
	}
	return player, nil
}
