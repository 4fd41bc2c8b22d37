package schedule

import (
	"sync"
	"time"

	"taskflow/internal/model"
)

type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

func (v View) Valid() bool {
	return v == ViewMonth || v == ViewWeek || v == ViewDay
}

type Action string

const (
	ActionPrev  Action = "PREV"
	ActionNext  Action = "NEXT"
	ActionToday Action = "TODAY"
)

// LabelLayout renders the toolbar label, e.g. "June 2024".
const LabelLayout = "January 2006"

// Window is the visible range of a view, End exclusive.
type Window struct {
	View  View      `json:"view"`
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Navigator tracks the calendar's current view and anchor date.
type Navigator struct {
	mu   sync.Mutex
	view View
	date time.Time
	now  func() time.Time
}

// NewNavigator starts on the week containing now().
func NewNavigator(now func() time.Time) *Navigator {
	if now == nil {
		now = time.Now
	}
	return &Navigator{view: ViewWeek, date: now(), now: now}
}

func (n *Navigator) SetView(v View) error {
	if !v.Valid() {
		return model.ValidationError("unknown view %q", v)
	}
	n.mu.Lock()
	n.view = v
	n.mu.Unlock()
	return nil
}

// SetDate moves the anchor date without changing the view.
func (n *Navigator) SetDate(t time.Time) {
	n.mu.Lock()
	n.date = t
	n.mu.Unlock()
}

// Navigate steps one view-length back or forward, or jumps to today.
func (n *Navigator) Navigate(a Action) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch a {
	case ActionPrev:
		n.date = step(n.view, n.date, -1)
	case ActionNext:
		n.date = step(n.view, n.date, 1)
	case ActionToday:
		n.date = n.now()
	default:
		return model.ValidationError("unknown navigation action %q", a)
	}
	return nil
}

func (n *Navigator) Window() Window {
	n.mu.Lock()
	defer n.mu.Unlock()
	return WindowFor(n.view, n.date)
}

// WindowFor computes the visible range of view around date. Weeks start on
// Sunday.
func WindowFor(view View, date time.Time) Window {
	y, m, d := date.Date()
	loc := date.Location()

	var start, end time.Time
	switch view {
	case ViewMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case ViewDay:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 1)
	default:
		view = ViewWeek
		start = time.Date(y, m, d-int(date.Weekday()), 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 7)
	}

	return Window{
		View:  view,
		Date:  date,
		Label: date.Format(LabelLayout),
		Start: start,
		End:   end,
	}
}

// Contains reports whether the event overlaps the window.
func (w Window) Contains(e model.ScheduleEvent) bool {
	if e.End.Equal(e.Start) {
		return !e.Start.Before(w.Start) && e.Start.Before(w.End)
	}
	return e.Start.Before(w.End) && e.End.After(w.Start)
}

func step(view View, date time.Time, dir int) time.Time {
	switch view {
	case ViewMonth:
		return date.AddDate(0, dir, 0)
	case ViewDay:
		return date.AddDate(0, 0, dir)
	default:
		return date.AddDate(0, 0, 7*dir)
	}
}

// ParseView maps an empty string to the week view.
func ParseView(s string) (View, error) {
	if s == "" {
		return ViewWeek, nil
	}
	v := View(s)
	if !v.Valid() {
		return "", model.ValidationError("unknown view %q", s)
	}
	return v, nil
}
