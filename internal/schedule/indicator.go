package schedule

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Indicator holds the current time shown on the calendar, refreshed on a
// fixed interval.
type Indicator struct {
	mu       sync.RWMutex
	now      time.Time
	clock    func() time.Time
	interval time.Duration
}

func NewIndicator(interval time.Duration, clock func() time.Time) *Indicator {
	if clock == nil {
		clock = time.Now
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Indicator{now: clock(), clock: clock, interval: interval}
}

// Run refreshes the time until ctx is done.
func (i *Indicator) Run(ctx context.Context) {
	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	log.WithField("interval", i.interval).Debug("current time indicator started")
	for {
		select {
		case <-ctx.Done():
			log.Debug("current time indicator stopped")
			return
		case <-ticker.C:
			i.Refresh()
		}
	}
}

func (i *Indicator) Refresh() {
	t := i.clock()
	i.mu.Lock()
	i.now = t
	i.mu.Unlock()
}

func (i *Indicator) Now() time.Time {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.now
}

// IsCurrentHour reports whether t falls in the same calendar hour as Now.
// The week and day grids highlight that slot.
func (i *Indicator) IsCurrentHour(t time.Time) bool {
	now := i.Now()
	t = t.In(now.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd && t.Hour() == now.Hour()
}
