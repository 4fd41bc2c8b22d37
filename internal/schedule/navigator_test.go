package schedule_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"taskflow/internal/model"
	"taskflow/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNavigator_Steps(t *testing.T) {
	today := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	nav := schedule.NewNavigator(fixedClock(today))

	w := nav.Window()
	assert.Equal(t, schedule.ViewWeek, w.View)
	assert.Equal(t, "June 2024", w.Label)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), w.End)

	require.NoError(t, nav.Navigate(schedule.ActionNext))
	assert.Equal(t, time.Date(2024, 6, 19, 15, 0, 0, 0, time.UTC), nav.Window().Date)

	require.NoError(t, nav.SetView(schedule.ViewMonth))
	require.NoError(t, nav.Navigate(schedule.ActionNext))
	w = nav.Window()
	assert.Equal(t, "July 2024", w.Label)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), w.End)

	require.NoError(t, nav.SetView(schedule.ViewDay))
	require.NoError(t, nav.Navigate(schedule.ActionPrev))
	assert.Equal(t, time.Date(2024, 7, 18, 0, 0, 0, 0, time.UTC), nav.Window().Start)

	require.NoError(t, nav.Navigate(schedule.ActionToday))
	assert.Equal(t, today, nav.Window().Date)
}

func TestNavigator_RejectsUnknownInput(t *testing.T) {
	nav := schedule.NewNavigator(nil)

	assert.ErrorIs(t, nav.Navigate("SIDEWAYS"), model.ErrValidation)
	assert.ErrorIs(t, nav.SetView("year"), model.ErrValidation)

	_, err := schedule.ParseView("agenda")
	assert.ErrorIs(t, err, model.ErrValidation)

	v, err := schedule.ParseView("")
	require.NoError(t, err)
	assert.Equal(t, schedule.ViewWeek, v)
}

func TestVisibleAndRender(t *testing.T) {
	day := schedule.WindowFor(schedule.ViewDay, time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC))
	at := func(h int) time.Time { return time.Date(2024, 6, 3, h, 0, 0, 0, time.UTC) }

	events := []model.ScheduleEvent{
		{ID: "late", Start: at(15), End: at(16), Priority: model.PriorityLow},
		{ID: "early", Start: at(9), End: at(10), Priority: model.PriorityHigh},
		{ID: "tomorrow", Start: at(24), End: at(25), Priority: model.PriorityMedium},
		{ID: "overnight", Start: at(-2), End: at(1), Priority: model.PriorityMedium},
	}

	rendered := schedule.Render(schedule.Visible(events, day))

	require.Len(t, rendered, 3)
	assert.Equal(t, "overnight", rendered[0].ID)
	assert.Equal(t, "early", rendered[1].ID)
	assert.Equal(t, "rgb(239 68 68)", rendered[1].Color)
	assert.Equal(t, "late", rendered[2].ID)
	assert.Equal(t, "rgb(156 163 175)", rendered[2].Color)
	assert.Equal(t, "white", rendered[2].TextColor)
}

func TestIndicator(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 15, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	ind := schedule.NewIndicator(time.Millisecond, clock)

	assert.True(t, ind.IsCurrentHour(time.Date(2024, 6, 3, 10, 59, 0, 0, time.UTC)))
	assert.False(t, ind.IsCurrentHour(time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)))
	assert.False(t, ind.IsCurrentHour(time.Date(2024, 6, 4, 10, 15, 0, 0, time.UTC)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ticks atomic.Int64
	ticking := schedule.NewIndicator(time.Millisecond, func() time.Time {
		return now.Add(time.Duration(ticks.Add(1)) * time.Minute)
	})
	first := ticking.Now()
	go ticking.Run(ctx)

	assert.Eventually(t, func() bool {
		return ticking.Now().After(first)
	}, time.Second, 5*time.Millisecond)
}
