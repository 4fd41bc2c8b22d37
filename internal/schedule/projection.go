// Package schedule derives and manages calendar events. In derived mode the
// schedule is a pure projection of the board; in standalone mode it is an
// independently edited event collection.
package schedule

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"taskflow/internal/model"
)

const stampLayout = model.DateLayout + " " + model.TimeLayout

// Project returns one event per task that has a date, start time and end
// time, in column order then task order. Event ids equal task ids.
func Project(columns []model.Column, loc *time.Location) []model.ScheduleEvent {
	if loc == nil {
		loc = time.Local
	}

	events := []model.ScheduleEvent{}
	for _, col := range columns {
		for _, task := range col.Tasks {
			if !task.Scheduled() {
				continue
			}
			start, err := time.ParseInLocation(stampLayout, task.Date+" "+task.StartTime, loc)
			if err != nil {
				log.WithField("task_id", task.ID).WithError(err).Debug("skipping task with unparseable start")
				continue
			}
			end, err := time.ParseInLocation(stampLayout, task.Date+" "+task.EndTime, loc)
			if err != nil {
				log.WithField("task_id", task.ID).WithError(err).Debug("skipping task with unparseable end")
				continue
			}
			events = append(events, model.ScheduleEvent{
				ID:          task.ID,
				Title:       task.Title,
				Start:       start,
				End:         end,
				Priority:    task.Priority,
				Description: task.Description,
			})
		}
	}
	return events
}

// EventSaver persists a full event sequence.
type EventSaver interface {
	Save(ctx context.Context, events []model.ScheduleEvent) error
}

// Projector writes the projection of every committed board to the schedule
// document so readers of that key see the same events as the board.
type Projector struct {
	repo EventSaver
	loc  *time.Location
}

func NewProjector(repo EventSaver, loc *time.Location) *Projector {
	return &Projector{repo: repo, loc: loc}
}

// Sync has the board.ChangeFunc signature.
func (p *Projector) Sync(ctx context.Context, columns []model.Column) {
	events := Project(columns, p.loc)
	if err := p.repo.Save(ctx, events); err != nil {
		log.WithError(err).Error("failed to mirror schedule projection")
		return
	}
	log.WithField("events", len(events)).Debug("schedule projection mirrored")
}
