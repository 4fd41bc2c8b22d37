package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskflow/internal/model"
	"taskflow/internal/schedule"
)

type ScheduleHandler struct {
	calendar  *schedule.Calendar
	navigator *schedule.Navigator
	indicator *schedule.Indicator
	loc       *time.Location
}

func NewScheduleHandler(cal *schedule.Calendar, nav *schedule.Navigator, ind *schedule.Indicator, loc *time.Location) *ScheduleHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleHandler{calendar: cal, navigator: nav, indicator: ind, loc: loc}
}

type ScheduleResponse struct {
	Window   schedule.Window          `json:"window"`
	ReadOnly bool                     `json:"readOnly"`
	Events   []schedule.RenderedEvent `json:"events"`
}

type NavigateRequest struct {
	Action schedule.Action `json:"action"`
	View   schedule.View   `json:"view"`
}

type NowResponse struct {
	Now time.Time `json:"now"`
}

// GetSchedule godoc
// @Summary      Events in the visible window
// @Description  view and date default to the navigator's current state. date is YYYY-MM-DD.
// @Tags         Schedule
// @Produce      json
// @Param        view  query     string  false  "month, week or day"
// @Param        date  query     string  false  "Anchor date"
// @Success      200   {object}  ScheduleResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /schedule [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	current := h.navigator.Window()
	view, date := current.View, current.Date

	if v := c.Query("view"); v != "" {
		parsed, err := schedule.ParseView(v)
		if err != nil {
			respondError(c, err)
			return
		}
		view = parsed
	}
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation(model.DateLayout, d, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
		date = parsed
	}

	w := schedule.WindowFor(view, date)
	c.JSON(http.StatusOK, ScheduleResponse{
		Window:   w,
		ReadOnly: h.calendar.ReadOnly(),
		Events:   schedule.Render(schedule.Visible(h.calendar.Events(), w)),
	})
}

// Navigate godoc
// @Summary      Change view or step the calendar
// @Tags         Schedule
// @Accept       json
// @Produce      json
// @Param        navigation  body      NavigateRequest  true  "PREV, NEXT or TODAY and an optional view"
// @Success      200         {object}  schedule.Window
// @Failure      400         {object}  ErrorResponse
// @Router       /schedule/navigate [post]
func (h *ScheduleHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if req.View != "" {
		if err := h.navigator.SetView(req.View); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Action != "" {
		if err := h.navigator.Navigate(req.Action); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, h.navigator.Window())
}

// SelectSlot godoc
// @Summary      Start creating an event from a time range
// @Tags         Schedule
// @Accept       json
// @Produce      json
// @Param        slot  body      schedule.Slot  true  "Selected range"
// @Success      200   {object}  model.EventDraft
// @Failure      400   {object}  ErrorResponse
// @Router       /schedule/slots [post]
func (h *ScheduleHandler) SelectSlot(c *gin.Context) {
	var req schedule.Slot
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if req.End.Before(req.Start) {
		respondError(c, model.ValidationError("slot ends before it starts"))
		return
	}
	c.JSON(http.StatusOK, h.calendar.SelectSlot(req))
}

// ClearSelection godoc
// @Summary      Cancel the pending slot selection
// @Tags         Schedule
// @Success      204
// @Router       /schedule/slots [delete]
func (h *ScheduleHandler) ClearSelection(c *gin.Context) {
	h.calendar.ClearSelection()
	c.Status(http.StatusNoContent)
}

// CreateEvent godoc
// @Summary      Create an event
// @Description  start and end may be omitted after a slot was selected.
// @Tags         Schedule
// @Accept       json
// @Produce      json
// @Param        event  body      model.EventDraft  true  "Event"
// @Success      201    {object}  model.ScheduleEvent
// @Failure      400    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse
// @Router       /schedule/events [post]
func (h *ScheduleHandler) CreateEvent(c *gin.Context) {
	var req model.EventDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	event, err := h.calendar.AddEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// GetEvent godoc
// @Summary      Select an event for editing
// @Tags         Schedule
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  model.ScheduleEvent
// @Failure      404  {object}  ErrorResponse
// @Router       /schedule/events/{id} [get]
func (h *ScheduleHandler) GetEvent(c *gin.Context) {
	event, err := h.calendar.SelectEvent(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary      Replace an event
// @Tags         Schedule
// @Accept       json
// @Produce      json
// @Param        id     path      string               true  "Event ID"
// @Param        event  body      model.ScheduleEvent  true  "Event"
// @Success      200    {object}  model.ScheduleEvent
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse
// @Router       /schedule/events/{id} [put]
func (h *ScheduleHandler) UpdateEvent(c *gin.Context) {
	var req model.ScheduleEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	req.ID = c.Param("id")

	event, err := h.calendar.UpdateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Tags         Schedule
// @Param        id  path  string  true  "Event ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /schedule/events/{id} [delete]
func (h *ScheduleHandler) DeleteEvent(c *gin.Context) {
	if err := h.calendar.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Now godoc
// @Summary      Current time indicator
// @Tags         Schedule
// @Produce      json
// @Success      200  {object}  NowResponse
// @Router       /schedule/now [get]
func (h *ScheduleHandler) Now(c *gin.Context) {
	c.JSON(http.StatusOK, NowResponse{Now: h.indicator.Now()})
}
