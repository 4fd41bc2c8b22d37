package repository

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"taskflow/internal/model"
	"taskflow/internal/store"
)

// ColumnsKey holds the ordered column sequence.
const ColumnsKey = "taskflow-columns"

// ColumnRepository persists the whole board as one JSON document.
type ColumnRepository struct {
	store store.Store
}

func NewColumnRepository(s store.Store) *ColumnRepository {
	return &ColumnRepository{store: s}
}

// Load returns the stored columns. ok is false when nothing has been saved yet.
func (r *ColumnRepository) Load(ctx context.Context) (columns []model.Column, ok bool, err error) {
	data, ok, err := r.store.Get(ctx, ColumnsKey)
	if err != nil || !ok {
		return nil, ok, err
	}

	if err := decode(ColumnsKey, data, columnsSchema, &columns); err != nil {
		return nil, true, err
	}
	if err := checkUniqueIDs(columns); err != nil {
		return nil, true, err
	}
	for i := range columns {
		if columns[i].Tasks == nil {
			columns[i].Tasks = []model.Task{}
		}
	}
	return columns, true, nil
}

// Save replaces the stored document with columns.
func (r *ColumnRepository) Save(ctx context.Context, columns []model.Column) error {
	if columns == nil {
		columns = []model.Column{}
	}
	data, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ColumnsKey, err)
	}
	return r.store.Set(ctx, ColumnsKey, data)
}

func checkUniqueIDs(columns []model.Column) error {
	columnIDs := make(map[string]struct{}, len(columns))
	taskIDs := make(map[string]struct{})
	for _, col := range columns {
		if _, dup := columnIDs[col.ID]; dup {
			return fmt.Errorf("%w: duplicate column id %q", ErrCorruptDocument, col.ID)
		}
		columnIDs[col.ID] = struct{}{}

		for _, task := range col.Tasks {
			if _, dup := taskIDs[task.ID]; dup {
				return fmt.Errorf("%w: duplicate task id %q", ErrCorruptDocument, task.ID)
			}
			taskIDs[task.ID] = struct{}{}
		}
	}
	return nil
}
