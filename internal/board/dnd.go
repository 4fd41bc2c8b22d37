package board

import (
	"context"
)

// Location addresses a slot in a column.
type Location struct {
	ColumnID string `json:"columnId" binding:"required"`
	Index    int    `json:"index"`
}

// DropResult is what a drag gesture reports on release. A nil Destination
// means the task was dropped outside any column.
type DropResult struct {
	Source      Location  `json:"source"`
	Destination *Location `json:"destination"`
}

// Drop resolves a finished drag gesture. It reports whether the board changed.
func (b *Board) Drop(ctx context.Context, r DropResult) (bool, error) {
	if r.Destination == nil {
		return false, nil
	}
	if r.Destination.ColumnID == r.Source.ColumnID && r.Destination.Index == r.Source.Index {
		return false, nil
	}

	err := b.MoveTask(ctx, r.Source.ColumnID, r.Source.Index, r.Destination.ColumnID, r.Destination.Index)
	if err != nil {
		return false, err
	}
	return true, nil
}
