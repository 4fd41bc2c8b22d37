package schedule

import (
	"sort"

	"taskflow/internal/model"
)

// RenderedEvent is an event ready for a calendar grid.
type RenderedEvent struct {
	model.ScheduleEvent
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
}

// Render colours events by priority and orders them by start time. Ties
// keep storage order.
func Render(events []model.ScheduleEvent) []RenderedEvent {
	out := make([]RenderedEvent, 0, len(events))
	for _, e := range events {
		out = append(out, RenderedEvent{
			ScheduleEvent: e,
			Color:         e.Priority.Color(),
			TextColor:     "white",
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Start.Before(out[b].Start)
	})
	return out
}

// Visible filters events to those overlapping w.
func Visible(events []model.ScheduleEvent, w Window) []model.ScheduleEvent {
	out := []model.ScheduleEvent{}
	for _, e := range events {
		if w.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}
