package schedule

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskflow/internal/model"
)

// EventStore loads and saves the standalone event collection.
type EventStore interface {
	Load(ctx context.Context) ([]model.ScheduleEvent, error)
	Save(ctx context.Context, events []model.ScheduleEvent) error
}

// ColumnSource supplies the board a derived calendar projects from.
type ColumnSource interface {
	Columns() []model.Column
}

// Slot is a time range picked on the calendar grid.
type Slot struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// Calendar mediates calendar interactions. It is either standalone (own
// event collection) or derived (read-only projection of a board).
type Calendar struct {
	mu        sync.Mutex
	events    []model.ScheduleEvent
	repo      EventStore
	source    ColumnSource
	loc       *time.Location
	newID     func() string
	selection *Slot
}

// NewStandalone returns a calendar that owns its events and persists them
// through repo.
func NewStandalone(repo EventStore) *Calendar {
	return &Calendar{
		events: []model.ScheduleEvent{},
		repo:   repo,
		newID: func() string {
			return "event-" + uuid.NewString()
		},
	}
}

// NewDerived returns a read-only calendar over the board's scheduled tasks.
func NewDerived(source ColumnSource, loc *time.Location) *Calendar {
	return &Calendar{source: source, loc: loc}
}

// SetIDGenerator replaces the id generator used for new events.
func (c *Calendar) SetIDGenerator(fn func() string) {
	c.mu.Lock()
	c.newID = fn
	c.mu.Unlock()
}

func (c *Calendar) ReadOnly() bool {
	return c.source != nil
}

// Load reads the stored events of a standalone calendar.
func (c *Calendar) Load(ctx context.Context) error {
	if c.ReadOnly() {
		return nil
	}

	events, err := c.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	c.mu.Lock()
	c.events = events
	c.mu.Unlock()
	return nil
}

// Events returns the current events in storage order.
func (c *Calendar) Events() []model.ScheduleEvent {
	if c.ReadOnly() {
		return Project(c.source.Columns(), c.loc)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

func (c *Calendar) Event(id string) (model.ScheduleEvent, error) {
	events := c.Events()
	i := eventIndex(events, id)
	if i < 0 {
		return model.ScheduleEvent{}, ErrEventNotFound
	}
	return events[i], nil
}

// SelectSlot starts the create flow and returns a draft pre-filled with the
// slot's range.
func (c *Calendar) SelectSlot(slot Slot) model.EventDraft {
	c.mu.Lock()
	c.selection = &slot
	c.mu.Unlock()

	return model.EventDraft{
		Priority: model.DefaultPriority,
		Start:    slot.Start,
		End:      slot.End,
	}
}

// SelectEvent starts the edit flow for an existing event.
func (c *Calendar) SelectEvent(id string) (model.ScheduleEvent, error) {
	return c.Event(id)
}

// Selection returns the slot chosen by the last SelectSlot, if any.
func (c *Calendar) Selection() (Slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection == nil {
		return Slot{}, false
	}
	return *c.selection, true
}

func (c *Calendar) ClearSelection() {
	c.mu.Lock()
	c.selection = nil
	c.mu.Unlock()
}

// AddEvent appends a new event. A draft without a range takes the selected
// slot's range. The selection is cleared on success.
func (c *Calendar) AddEvent(ctx context.Context, draft model.EventDraft) (model.ScheduleEvent, error) {
	if c.ReadOnly() {
		return model.ScheduleEvent{}, ErrReadOnly
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if draft.Start.IsZero() && draft.End.IsZero() && c.selection != nil {
		draft.Start, draft.End = c.selection.Start, c.selection.End
	}
	draft = draft.Normalize()
	if err := model.Validate(draft); err != nil {
		return model.ScheduleEvent{}, err
	}

	event := model.ScheduleEvent{
		ID:          c.newID(),
		Title:       draft.Title,
		Start:       draft.Start,
		End:         draft.End,
		Priority:    draft.Priority,
		Description: draft.Description,
	}
	next := append(slices.Clone(c.events), event)
	if err := c.commit(ctx, next); err != nil {
		return model.ScheduleEvent{}, err
	}
	c.selection = nil

	log.WithField("event_id", event.ID).Debug("event added")
	return event, nil
}

// UpdateEvent replaces the event with the same id wholesale.
func (c *Calendar) UpdateEvent(ctx context.Context, event model.ScheduleEvent) (model.ScheduleEvent, error) {
	if c.ReadOnly() {
		return model.ScheduleEvent{}, ErrReadOnly
	}

	event.Title = strings.TrimSpace(event.Title)
	if event.Priority == "" {
		event.Priority = model.DefaultPriority
	}
	draft := model.EventDraft{
		Title:       event.Title,
		Description: event.Description,
		Priority:    event.Priority,
		Start:       event.Start,
		End:         event.End,
	}
	if err := model.Validate(draft); err != nil {
		return model.ScheduleEvent{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := eventIndex(c.events, event.ID)
	if i < 0 {
		return model.ScheduleEvent{}, ErrEventNotFound
	}
	next := slices.Clone(c.events)
	next[i] = event
	if err := c.commit(ctx, next); err != nil {
		return model.ScheduleEvent{}, err
	}
	return event, nil
}

func (c *Calendar) DeleteEvent(ctx context.Context, id string) error {
	if c.ReadOnly() {
		return ErrReadOnly
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := eventIndex(c.events, id)
	if i < 0 {
		return ErrEventNotFound
	}
	next := slices.Delete(slices.Clone(c.events), i, i+1)
	return c.commit(ctx, next)
}

func (c *Calendar) commit(ctx context.Context, next []model.ScheduleEvent) error {
	if err := c.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persist schedule: %w", err)
	}
	c.events = next
	return nil
}

func eventIndex(events []model.ScheduleEvent, id string) int {
	return slices.IndexFunc(events, func(e model.ScheduleEvent) bool { return e.ID == id })
}
