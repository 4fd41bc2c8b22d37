package repository

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"taskflow/internal/model"
	"taskflow/internal/store"
)

// ScheduleKey holds the schedule event sequence.
const ScheduleKey = "taskflow-schedule"

type ScheduleRepository struct {
	store store.Store
}

func NewScheduleRepository(s store.Store) *ScheduleRepository {
	return &ScheduleRepository{store: s}
}

func (r *ScheduleRepository) Load(ctx context.Context) ([]model.ScheduleEvent, error) {
	data, ok, err := r.store.Get(ctx, ScheduleKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.ScheduleEvent{}, nil
	}

	var events []model.ScheduleEvent
	if err := decode(ScheduleKey, data, scheduleSchema, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *ScheduleRepository) Save(ctx context.Context, events []model.ScheduleEvent) error {
	if events == nil {
		events = []model.ScheduleEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ScheduleKey, err)
	}
	return r.store.Set(ctx, ScheduleKey, data)
}

// Clear removes the stored schedule document.
func (r *ScheduleRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, ScheduleKey)
}
