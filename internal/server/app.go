package server

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"taskflow/internal/board"
	"taskflow/internal/config"
	"taskflow/internal/repository"
	"taskflow/internal/schedule"
	"taskflow/internal/store"
)

// App is the loaded board and schedule shared by the HTTP server and the
// terminal board.
type App struct {
	Store     store.Store
	Board     *board.Board
	Calendar  *schedule.Calendar
	Navigator *schedule.Navigator
	Indicator *schedule.Indicator
	Location  *time.Location
}

// Bootstrap opens the configured store and loads the board and schedule.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	s, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	log.WithField("driver", cfg.StoreDriver).Info("store opened")

	app, err := NewApp(ctx, cfg, s)
	if err != nil {
		closeQuietly(s, "store")
		return nil, err
	}
	return app, nil
}

// NewApp wires the board and schedule over an already opened store.
func NewApp(ctx context.Context, cfg *config.Config, s store.Store) (*App, error) {
	loc := cfg.Location()
	columns := repository.NewColumnRepository(s)
	events := repository.NewScheduleRepository(s)

	b := board.New(columns)

	var cal *schedule.Calendar
	switch cfg.ScheduleMode {
	case config.ScheduleStandalone:
		cal = schedule.NewStandalone(events)
		if err := cal.Load(ctx); err != nil {
			return nil, err
		}
	default:
		cal = schedule.NewDerived(b, loc)
		if cfg.ScheduleMirror {
			b.OnChange(schedule.NewProjector(events, loc).Sync)
		}
	}

	if err := b.Load(ctx); err != nil {
		return nil, err
	}

	now := func() time.Time { return time.Now().In(loc) }
	log.WithFields(log.Fields{
		"schedule_mode": cfg.ScheduleMode,
		"columns":       len(b.Columns()),
	}).Info("board loaded")

	return &App{
		Store:     s,
		Board:     b,
		Calendar:  cal,
		Navigator: schedule.NewNavigator(now),
		Indicator: schedule.NewIndicator(cfg.TickInterval, now),
		Location:  loc,
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
