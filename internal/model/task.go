package model

import "strings"

// Formats of the optional schedule fields on a task.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Date        string   `json:"date,omitempty"`
	StartTime   string   `json:"startTime,omitempty"`
	EndTime     string   `json:"endTime,omitempty"`
}

// Scheduled reports whether the task carries a date and both times.
func (t Task) Scheduled() bool {
	return t.Date != "" && t.StartTime != "" && t.EndTime != ""
}

// TaskDraft is the input for creating a task.
type TaskDraft struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority" validate:"required,oneof=low medium high"`
	Date        string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   string   `json:"startTime" validate:"omitempty,clock"`
	EndTime     string   `json:"endTime" validate:"omitempty,clock"`
}

// Normalize trims the title and fills in the default priority.
func (d TaskDraft) Normalize() TaskDraft {
	d.Title = strings.TrimSpace(d.Title)
	if d.Priority == "" {
		d.Priority = DefaultPriority
	}
	return d
}

// Draft returns the task's editable fields, used to validate a patched task.
func (t Task) Draft() TaskDraft {
	return TaskDraft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Date:        t.Date,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
	}
}

// TaskPatch carries the fields to merge into an existing task. Nil fields
// are left untouched; a pointer to "" clears an optional field. The merged
// task is validated, not the patch.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Date        *string   `json:"date,omitempty"`
	StartTime   *string   `json:"startTime,omitempty"`
	EndTime     *string   `json:"endTime,omitempty"`
}

// Apply merges the patch into t and returns the result.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		t.EndTime = *p.EndTime
	}
	return t
}
