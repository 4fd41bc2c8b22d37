package board_test

import (
	"context"
	"fmt"
	"testing"

	"taskflow/internal/board"
	"taskflow/internal/model"
	"taskflow/internal/repository"
	"taskflow/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() board.Option {
	n := 0
	return board.WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}

func setupBoard(t *testing.T) (*board.Board, *repository.ColumnRepository) {
	t.Helper()
	repo := repository.NewColumnRepository(store.NewMemoryStore())
	b := board.New(repo, sequentialIDs())
	require.NoError(t, b.Load(context.Background()))
	return b, repo
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestLoad_SeedsDefaultColumns(t *testing.T) {
	b, repo := setupBoard(t)

	assert.Equal(t, board.DefaultColumns(), b.Columns())

	stored, ok, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, board.DefaultColumns(), stored)
}

func TestLoad_KeepsStoredBoard(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewColumnRepository(store.NewMemoryStore())
	saved := []model.Column{{ID: "only", Title: "Only", Tasks: []model.Task{}}}
	require.NoError(t, repo.Save(ctx, saved))

	b := board.New(repo)
	require.NoError(t, b.Load(ctx))

	assert.Equal(t, saved, b.Columns())
}

func TestAddColumn(t *testing.T) {
	ctx := context.Background()
	b, repo := setupBoard(t)

	col, err := b.AddColumn(ctx, "  Blocked  ")
	require.NoError(t, err)

	columns := b.Columns()
	require.Len(t, columns, 4)
	assert.Equal(t, col, columns[3])
	assert.Equal(t, "Blocked", col.Title)
	assert.Empty(t, col.Tasks)

	stored, _, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, columns, stored)
}

func TestAddColumn_BlankTitleIsRejected(t *testing.T) {
	b, _ := setupBoard(t)

	for _, title := range []string{"", "   "} {
		_, err := b.AddColumn(context.Background(), title)
		assert.ErrorIs(t, err, model.ErrValidation)
	}
	assert.Len(t, b.Columns(), 3)
}

func TestRenameColumn(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)

	col, err := b.RenameColumn(ctx, "todo", "Backlog")
	require.NoError(t, err)
	assert.Equal(t, "Backlog", col.Title)

	_, err = b.RenameColumn(ctx, "nope", "x")
	assert.ErrorIs(t, err, board.ErrColumnNotFound)

	_, err = b.RenameColumn(ctx, "todo", " ")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestDeleteColumn_RemovesTasksAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)

	_, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, b.DeleteColumn(ctx, "todo"))
	assert.Len(t, b.Columns(), 2)

	_, _, err = b.FindTask("task-1")
	assert.ErrorIs(t, err, board.ErrTaskNotFound)

	before := b.Columns()
	assert.ErrorIs(t, b.DeleteColumn(ctx, "todo"), board.ErrColumnNotFound)
	assert.Equal(t, before, b.Columns())
}

func TestAddTask(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)

	first, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "first"})
	require.NoError(t, err)
	second, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "second", Priority: model.PriorityHigh})
	require.NoError(t, err)

	assert.Equal(t, model.PriorityMedium, first.Priority)
	assert.Equal(t, model.PriorityHigh, second.Priority)
	assert.NotEqual(t, first.ID, second.ID)

	col, err := b.Column("todo")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, titles(col.Tasks))
}

func TestAddTask_Rejections(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)

	_, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "  "})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = b.AddTask(ctx, "todo", model.TaskDraft{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = b.AddTask(ctx, "todo", model.TaskDraft{Title: "x", Date: "01/06/2024"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = b.AddTask(ctx, "missing", model.TaskDraft{Title: "x"})
	assert.ErrorIs(t, err, board.ErrColumnNotFound)

	col, err := b.Column("todo")
	require.NoError(t, err)
	assert.Empty(t, col.Tasks)
}

func TestDeleteThenReAdd_GetsFreshID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewColumnRepository(store.NewMemoryStore())
	b := board.New(repo)
	require.NoError(t, b.Load(ctx))

	task, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "again"})
	require.NoError(t, err)
	require.NoError(t, b.DeleteTask(ctx, "todo", task.ID))

	readded, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: task.Title, Priority: task.Priority})
	require.NoError(t, err)
	assert.NotEqual(t, task.ID, readded.ID)
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)

	task, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "tune", Description: "d", Priority: model.PriorityLow})
	require.NoError(t, err)

	high := model.PriorityHigh
	updated, err := b.UpdateTask(ctx, "todo", task.ID, model.TaskPatch{Priority: &high})
	require.NoError(t, err)

	assert.Equal(t, model.PriorityHigh, updated.Priority)
	assert.Equal(t, "destructive", updated.Priority.Badge())

	want := task
	want.Priority = model.PriorityHigh
	assert.Equal(t, want, updated)
}

func TestUpdateTask_Rejections(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)

	task, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "keep"})
	require.NoError(t, err)

	blank := " "
	_, err = b.UpdateTask(ctx, "todo", task.ID, model.TaskPatch{Title: &blank})
	assert.ErrorIs(t, err, model.ErrValidation)

	badTime := "25:99"
	_, err = b.UpdateTask(ctx, "todo", task.ID, model.TaskPatch{StartTime: &badTime})
	assert.ErrorIs(t, err, model.ErrValidation)

	title := "new"
	_, err = b.UpdateTask(ctx, "done", task.ID, model.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, board.ErrTaskNotFound)

	_, err = b.UpdateTask(ctx, "missing", task.ID, model.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, board.ErrColumnNotFound)

	_, got, err := b.FindTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)

	task, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "gone"})
	require.NoError(t, err)

	require.NoError(t, b.DeleteTask(ctx, "todo", task.ID))
	assert.ErrorIs(t, b.DeleteTask(ctx, "todo", task.ID), board.ErrTaskNotFound)
	assert.ErrorIs(t, b.DeleteTask(ctx, "missing", task.ID), board.ErrColumnNotFound)
}

func seedMoveBoard(t *testing.T) *board.Board {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewColumnRepository(store.NewMemoryStore())
	require.NoError(t, repo.Save(ctx, []model.Column{
		{ID: "A", Title: "A", Tasks: []model.Task{
			{ID: "T1", Title: "T1", Priority: model.PriorityLow},
			{ID: "T2", Title: "T2", Priority: model.PriorityLow},
		}},
		{ID: "B", Title: "B", Tasks: []model.Task{
			{ID: "T3", Title: "T3", Priority: model.PriorityLow},
		}},
	}))
	b := board.New(repo)
	require.NoError(t, b.Load(ctx))
	return b
}

func TestMoveTask_AcrossColumns(t *testing.T) {
	b := seedMoveBoard(t)

	require.NoError(t, b.MoveTask(context.Background(), "A", 0, "B", 0))

	columns := b.Columns()
	assert.Equal(t, []string{"T2"}, titles(columns[0].Tasks))
	assert.Equal(t, []string{"T1", "T3"}, titles(columns[1].Tasks))
}

func TestMoveTask_WithinColumn(t *testing.T) {
	b := seedMoveBoard(t)

	require.NoError(t, b.MoveTask(context.Background(), "A", 0, "A", 1))

	assert.Equal(t, []string{"T2", "T1"}, titles(b.Columns()[0].Tasks))
}

func TestMoveTask_ToEndOfColumn(t *testing.T) {
	b := seedMoveBoard(t)

	require.NoError(t, b.MoveTask(context.Background(), "A", 1, "B", 1))

	columns := b.Columns()
	assert.Equal(t, []string{"T1"}, titles(columns[0].Tasks))
	assert.Equal(t, []string{"T3", "T2"}, titles(columns[1].Tasks))
}

func TestMoveTask_InvalidIndicesLeaveBoardUntouched(t *testing.T) {
	ctx := context.Background()
	b := seedMoveBoard(t)
	before := b.Columns()

	assert.ErrorIs(t, b.MoveTask(ctx, "A", 5, "B", 0), model.ErrValidation)
	assert.ErrorIs(t, b.MoveTask(ctx, "A", 0, "B", 3), model.ErrValidation)
	assert.ErrorIs(t, b.MoveTask(ctx, "A", 0, "A", 2), model.ErrValidation)
	assert.ErrorIs(t, b.MoveTask(ctx, "A", 0, "Z", 0), board.ErrColumnNotFound)

	assert.Equal(t, before, b.Columns())
}

type mockPersister struct {
	mock.Mock
}

func (m *mockPersister) Load(ctx context.Context) ([]model.Column, bool, error) {
	args := m.Called(ctx)
	cols, _ := args.Get(0).([]model.Column)
	return cols, args.Bool(1), args.Error(2)
}

func (m *mockPersister) Save(ctx context.Context, columns []model.Column) error {
	args := m.Called(ctx, columns)
	return args.Error(0)
}

func TestMoveTask_SamePositionDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPersister)
	repo.On("Load", mock.Anything).Return([]model.Column{
		{ID: "A", Title: "A", Tasks: []model.Task{{ID: "T1", Title: "T1", Priority: model.PriorityLow}}},
	}, true, nil)

	b := board.New(repo)
	require.NoError(t, b.Load(ctx))
	before := b.Columns()

	require.NoError(t, b.MoveTask(ctx, "A", 0, "A", 0))

	assert.Equal(t, before, b.Columns())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFailedWriteKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPersister)
	repo.On("Load", mock.Anything).Return(board.DefaultColumns(), true, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

	b := board.New(repo)
	require.NoError(t, b.Load(ctx))

	_, err := b.AddColumn(ctx, "Never")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, board.DefaultColumns(), b.Columns())

	_, err = b.AddTask(ctx, "todo", model.TaskDraft{Title: "never"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, board.DefaultColumns(), b.Columns())
}

func TestLoad_PropagatesStoreErrors(t *testing.T) {
	repo := new(mockPersister)
	repo.On("Load", mock.Anything).Return(nil, false, assert.AnError)

	err := board.New(repo).Load(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}

func TestOnChange_ReceivesCommittedSnapshots(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)

	var seen [][]model.Column
	b.OnChange(func(_ context.Context, columns []model.Column) {
		seen = append(seen, columns)
	})

	_, err := b.AddColumn(ctx, "Later")
	require.NoError(t, err)
	_, err = b.AddColumn(ctx, "")
	require.Error(t, err)

	require.Len(t, seen, 1)
	assert.Len(t, seen[0], 4)

	// Snapshots are copies.
	seen[0][0].Title = "mutated"
	assert.Equal(t, "To Do", b.Columns()[0].Title)
}

func TestColumnsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBoard(t)
	_, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "original"})
	require.NoError(t, err)

	columns := b.Columns()
	columns[0].Tasks[0].Title = "changed"

	assert.Equal(t, "original", b.Columns()[0].Tasks[0].Title)
}

func TestScheduledTasksSurviveReload(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewColumnRepository(store.NewMemoryStore())
	b := board.New(repo)
	require.NoError(t, b.Load(ctx))

	_, err := b.AddTask(ctx, "todo", model.TaskDraft{Title: "standup", StartTime: "9:00", EndTime: "9:15"})
	assert.ErrorIs(t, err, model.ErrValidation)

	task, err := b.AddTask(ctx, "todo", model.TaskDraft{
		Title: "standup", Date: "2024-06-03", StartTime: "09:00", EndTime: "09:15",
	})
	require.NoError(t, err)

	loose := "9:30"
	_, err = b.UpdateTask(ctx, "todo", task.ID, model.TaskPatch{EndTime: &loose})
	assert.ErrorIs(t, err, model.ErrValidation)

	reloaded := board.New(repo)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, b.Columns(), reloaded.Columns())
}
