package model

// Column is an ordered bucket of tasks. Task order is display order.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// Clone returns a copy of the column that shares no task storage with c.
func (c Column) Clone() Column {
	tasks := make([]Task, len(c.Tasks))
	copy(tasks, c.Tasks)
	c.Tasks = tasks
	return c
}

// CloneColumns deep-copies a column sequence.
func CloneColumns(columns []Column) []Column {
	out := make([]Column, len(columns))
	for i, col := range columns {
		out[i] = col.Clone()
	}
	return out
}

// ColumnDraft is the input for creating or renaming a column.
type ColumnDraft struct {
	Title string `json:"title" validate:"required"`
}
