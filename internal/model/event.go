package model

import (
	"strings"
	"time"
)

// ScheduleEvent is a calendar interval. When derived from a task it shares
// the task's id.
type ScheduleEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Priority    Priority  `json:"priority"`
	Description string    `json:"description,omitempty"`
}

// EventDraft is the input for creating or replacing a standalone event.
type EventDraft struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority" validate:"omitempty,oneof=low medium high"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtefield=Start"`
}

func (d EventDraft) Normalize() EventDraft {
	d.Title = strings.TrimSpace(d.Title)
	if d.Priority == "" {
		d.Priority = DefaultPriority
	}
	return d
}
