// Package board owns the column/task state of a task board. Every mutation
// is written through to the persister before it becomes visible.
package board

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskflow/internal/model"
)

// Persister loads and saves the full column sequence.
type Persister interface {
	Load(ctx context.Context) ([]model.Column, bool, error)
	Save(ctx context.Context, columns []model.Column) error
}

// ChangeFunc observes every committed column sequence. It runs while the
// board is locked and must not call back into the Board.
type ChangeFunc func(ctx context.Context, columns []model.Column)

type Option func(*Board)

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(b *Board) {
		b.newID = fn
	}
}

type Board struct {
	mu        sync.Mutex
	columns   []model.Column
	repo      Persister
	newID     func(prefix string) string
	listeners []ChangeFunc
}

func New(repo Persister, opts ...Option) *Board {
	b := &Board{
		columns: []model.Column{},
		repo:    repo,
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DefaultColumns is the board a first run starts with.
func DefaultColumns() []model.Column {
	return []model.Column{
		{ID: "todo", Title: "To Do", Tasks: []model.Task{}},
		{ID: "in-progress", Title: "In Progress", Tasks: []model.Task{}},
		{ID: "done", Title: "Done", Tasks: []model.Task{}},
	}
}

// Load replaces the in-memory state with the persisted board, seeding and
// saving the default columns when nothing is stored yet.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	columns, ok, err := b.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	if !ok {
		log.Info("no saved board, seeding default columns")
		return b.commit(ctx, DefaultColumns())
	}

	b.columns = columns
	b.notify(ctx)
	return nil
}

// OnChange registers fn to run after every committed mutation.
func (b *Board) OnChange(fn ChangeFunc) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// Columns returns a deep copy of the current column sequence.
func (b *Board) Columns() []model.Column {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.CloneColumns(b.columns)
}

func (b *Board) Column(columnID string) (model.Column, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := columnIndex(b.columns, columnID)
	if i < 0 {
		return model.Column{}, ErrColumnNotFound
	}
	return b.columns[i].Clone(), nil
}

// FindTask looks a task up across the whole board.
func (b *Board) FindTask(taskID string) (columnID string, task model.Task, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, col := range b.columns {
		if j := taskIndex(col.Tasks, taskID); j >= 0 {
			return col.ID, col.Tasks[j], nil
		}
	}
	return "", model.Task{}, ErrTaskNotFound
}

func (b *Board) AddColumn(ctx context.Context, title string) (model.Column, error) {
	draft := model.ColumnDraft{Title: strings.TrimSpace(title)}
	if err := model.Validate(draft); err != nil {
		return model.Column{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	column := model.Column{ID: b.newID("column"), Title: draft.Title, Tasks: []model.Task{}}
	next := append(model.CloneColumns(b.columns), column)
	if err := b.commit(ctx, next); err != nil {
		return model.Column{}, err
	}

	log.WithField("column_id", column.ID).Debug("column added")
	return column.Clone(), nil
}

func (b *Board) RenameColumn(ctx context.Context, columnID, title string) (model.Column, error) {
	draft := model.ColumnDraft{Title: strings.TrimSpace(title)}
	if err := model.Validate(draft); err != nil {
		return model.Column{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := model.CloneColumns(b.columns)
	i := columnIndex(next, columnID)
	if i < 0 {
		return model.Column{}, ErrColumnNotFound
	}
	next[i].Title = draft.Title
	if err := b.commit(ctx, next); err != nil {
		return model.Column{}, err
	}
	return next[i].Clone(), nil
}

// DeleteColumn removes the column and every task in it.
func (b *Board) DeleteColumn(ctx context.Context, columnID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := columnIndex(b.columns, columnID)
	if i < 0 {
		return ErrColumnNotFound
	}

	next := slices.Delete(model.CloneColumns(b.columns), i, i+1)
	if err := b.commit(ctx, next); err != nil {
		return err
	}

	log.WithField("column_id", columnID).Debug("column deleted")
	return nil
}

// AddTask appends a new task to the end of the column.
func (b *Board) AddTask(ctx context.Context, columnID string, draft model.TaskDraft) (model.Task, error) {
	draft = draft.Normalize()
	if err := model.Validate(draft); err != nil {
		return model.Task{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := model.CloneColumns(b.columns)
	i := columnIndex(next, columnID)
	if i < 0 {
		return model.Task{}, ErrColumnNotFound
	}

	task := model.Task{
		ID:          b.newID("task"),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Date:        draft.Date,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
	}
	next[i].Tasks = append(next[i].Tasks, task)
	if err := b.commit(ctx, next); err != nil {
		return model.Task{}, err
	}

	log.WithFields(log.Fields{"column_id": columnID, "task_id": task.ID}).Debug("task added")
	return task, nil
}

// UpdateTask merges patch into the task with taskID inside columnID.
func (b *Board) UpdateTask(ctx context.Context, columnID, taskID string, patch model.TaskPatch) (model.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := model.CloneColumns(b.columns)
	i := columnIndex(next, columnID)
	if i < 0 {
		return model.Task{}, ErrColumnNotFound
	}
	j := taskIndex(next[i].Tasks, taskID)
	if j < 0 {
		return model.Task{}, ErrTaskNotFound
	}

	updated := patch.Apply(next[i].Tasks[j])
	if err := model.Validate(updated.Draft()); err != nil {
		return model.Task{}, err
	}
	next[i].Tasks[j] = updated
	if err := b.commit(ctx, next); err != nil {
		return model.Task{}, err
	}
	return next[i].Tasks[j], nil
}

func (b *Board) DeleteTask(ctx context.Context, columnID, taskID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := model.CloneColumns(b.columns)
	i := columnIndex(next, columnID)
	if i < 0 {
		return ErrColumnNotFound
	}
	j := taskIndex(next[i].Tasks, taskID)
	if j < 0 {
		return ErrTaskNotFound
	}

	next[i].Tasks = slices.Delete(next[i].Tasks, j, j+1)
	return b.commit(ctx, next)
}

// MoveTask removes the task at srcIndex of srcColumn and inserts it at
// dstIndex of dstColumn. Moving onto the same position writes nothing.
func (b *Board) MoveTask(ctx context.Context, srcColumn string, srcIndex int, dstColumn string, dstIndex int) error {
	if srcColumn == dstColumn && srcIndex == dstIndex {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := model.CloneColumns(b.columns)
	si := columnIndex(next, srcColumn)
	di := columnIndex(next, dstColumn)
	if si < 0 || di < 0 {
		return ErrColumnNotFound
	}
	if srcIndex < 0 || srcIndex >= len(next[si].Tasks) {
		return model.ValidationError("source index %d out of range [0,%d)", srcIndex, len(next[si].Tasks))
	}

	task := next[si].Tasks[srcIndex]
	next[si].Tasks = slices.Delete(next[si].Tasks, srcIndex, srcIndex+1)

	if dstIndex < 0 || dstIndex > len(next[di].Tasks) {
		return model.ValidationError("destination index %d out of range [0,%d]", dstIndex, len(next[di].Tasks))
	}
	next[di].Tasks = slices.Insert(next[di].Tasks, dstIndex, task)

	if err := b.commit(ctx, next); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"task_id": task.ID,
		"from":    fmt.Sprintf("%s[%d]", srcColumn, srcIndex),
		"to":      fmt.Sprintf("%s[%d]", dstColumn, dstIndex),
	}).Debug("task moved")
	return nil
}

// commit persists next and only then makes it the current state.
// Callers hold b.mu.
func (b *Board) commit(ctx context.Context, next []model.Column) error {
	if err := b.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persist board: %w", err)
	}
	b.columns = next
	b.notify(ctx)
	return nil
}

func (b *Board) notify(ctx context.Context) {
	for _, fn := range b.listeners {
		fn(ctx, model.CloneColumns(b.columns))
	}
}

func columnIndex(columns []model.Column, id string) int {
	return slices.IndexFunc(columns, func(c model.Column) bool { return c.ID == id })
}

func taskIndex(tasks []model.Task, id string) int {
	return slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == id })
}
