package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/board"
	"taskflow/internal/model"
)

type BoardHandler struct {
	board *board.Board
}

func NewBoardHandler(b *board.Board) *BoardHandler {
	return &BoardHandler{board: b}
}

type DropResponse struct {
	Moved   bool           `json:"moved"`
	Columns []model.Column `json:"columns"`
}

// GetBoard godoc
// @Summary      Get the board
// @Tags         Board
// @Produce      json
// @Success      200  {array}  model.Column
// @Router       /board [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Columns())
}

// CreateColumn godoc
// @Summary      Add a column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        column  body      model.ColumnDraft  true  "Column"
// @Success      201     {object}  model.Column
// @Failure      400     {object}  ErrorResponse
// @Router       /columns [post]
func (h *BoardHandler) CreateColumn(c *gin.Context) {
	var req model.ColumnDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	column, err := h.board.AddColumn(c.Request.Context(), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

// RenameColumn godoc
// @Summary      Rename a column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        id      path      string             true  "Column ID"
// @Param        column  body      model.ColumnDraft  true  "Column"
// @Success      200     {object}  model.Column
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /columns/{id} [put]
func (h *BoardHandler) RenameColumn(c *gin.Context) {
	var req model.ColumnDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	column, err := h.board.RenameColumn(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// DeleteColumn godoc
// @Summary      Delete a column and its tasks
// @Tags         Columns
// @Param        id  path  string  true  "Column ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /columns/{id} [delete]
func (h *BoardHandler) DeleteColumn(c *gin.Context) {
	if err := h.board.DeleteColumn(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateTask godoc
// @Summary      Append a task to a column
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Column ID"
// @Param        task  body      model.TaskDraft  true  "Task"
// @Success      201   {object}  model.Task
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /columns/{id}/tasks [post]
func (h *BoardHandler) CreateTask(c *gin.Context) {
	var req model.TaskDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	task, err := h.board.AddTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary      Update task fields
// @Description  Only the fields present in the body change. An empty string clears date or times.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Column ID"
// @Param        task_id  path      string           true  "Task ID"
// @Param        patch    body      model.TaskPatch  true  "Changes"
// @Success      200      {object}  model.Task
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /columns/{id}/tasks/{task_id} [patch]
func (h *BoardHandler) UpdateTask(c *gin.Context) {
	var req model.TaskPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	task, err := h.board.UpdateTask(c.Request.Context(), c.Param("id"), c.Param("task_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         Tasks
// @Param        id       path  string  true  "Column ID"
// @Param        task_id  path  string  true  "Task ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /columns/{id}/tasks/{task_id} [delete]
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	if err := h.board.DeleteTask(c.Request.Context(), c.Param("id"), c.Param("task_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Drop godoc
// @Summary      Finish a drag gesture
// @Description  A null destination or an unchanged position leaves the board as it is.
// @Tags         Board
// @Accept       json
// @Produce      json
// @Param        drop  body      board.DropResult  true  "Drop result"
// @Success      200   {object}  DropResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /board/drop [post]
func (h *BoardHandler) Drop(c *gin.Context) {
	var req board.DropResult
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	moved, err := h.board.Drop(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DropResponse{Moved: moved, Columns: h.board.Columns()})
}
