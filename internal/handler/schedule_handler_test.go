package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"taskflow/internal/board"
	"taskflow/internal/handler"
	"taskflow/internal/model"
	"taskflow/internal/repository"
	"taskflow/internal/schedule"
	"taskflow/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC)

func scheduleRouter(cal *schedule.Calendar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	clock := func() time.Time { return today }
	h := handler.NewScheduleHandler(cal, schedule.NewNavigator(clock), schedule.NewIndicator(time.Minute, clock), time.UTC)

	r := gin.New()
	r.GET("/schedule", h.GetSchedule)
	r.POST("/schedule/navigate", h.Navigate)
	r.POST("/schedule/slots", h.SelectSlot)
	r.DELETE("/schedule/slots", h.ClearSelection)
	r.POST("/schedule/events", h.CreateEvent)
	r.GET("/schedule/events/:id", h.GetEvent)
	r.PUT("/schedule/events/:id", h.UpdateEvent)
	r.DELETE("/schedule/events/:id", h.DeleteEvent)
	r.GET("/schedule/now", h.Now)
	return r
}

func setupStandaloneRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cal := schedule.NewStandalone(repository.NewScheduleRepository(store.NewMemoryStore()))
	n := 0
	cal.SetIDGenerator(func() string {
		n++
		return fmt.Sprintf("event-%d", n)
	})
	require.NoError(t, cal.Load(context.Background()))
	return scheduleRouter(cal)
}

func TestScheduleFlow_Standalone(t *testing.T) {
	router := setupStandaloneRouter(t)

	resp := doJSON(router, http.MethodPost, "/schedule/slots", gin.H{
		"start": "2024-06-03T14:00:00Z",
		"end":   "2024-06-03T15:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	var draft model.EventDraft
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &draft))
	assert.Equal(t, model.PriorityMedium, draft.Priority)

	resp = doJSON(router, http.MethodPost, "/schedule/events", gin.H{"title": "Demo", "priority": "high"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var event model.ScheduleEvent
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &event))
	assert.Equal(t, "event-1", event.ID)
	assert.True(t, event.Start.Equal(time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC)))

	resp = doJSON(router, http.MethodGet, "/schedule?view=day&date=2024-06-03", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var view handler.ScheduleResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.False(t, view.ReadOnly)
	assert.Equal(t, "June 2024", view.Window.Label)
	require.Len(t, view.Events, 1)
	assert.Equal(t, "rgb(239 68 68)", view.Events[0].Color)

	event.Title = "Demo day"
	resp = doJSON(router, http.MethodPut, "/schedule/events/event-1", event)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(router, http.MethodGet, "/schedule/events/event-1", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &event))
	assert.Equal(t, "Demo day", event.Title)

	resp = doJSON(router, http.MethodDelete, "/schedule/events/event-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	resp = doJSON(router, http.MethodGet, "/schedule/events/event-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateEvent_WithoutRange(t *testing.T) {
	router := setupStandaloneRouter(t)

	resp := doJSON(router, http.MethodDelete, "/schedule/slots", nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(router, http.MethodPost, "/schedule/events", gin.H{"title": "Floating"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetSchedule_BadQuery(t *testing.T) {
	router := setupStandaloneRouter(t)

	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/schedule?view=year", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/schedule?date=06/03/2024", nil).Code)
}

func TestNavigate(t *testing.T) {
	router := setupStandaloneRouter(t)

	resp := doJSON(router, http.MethodPost, "/schedule/navigate", gin.H{"view": "month", "action": "NEXT"})
	require.Equal(t, http.StatusOK, resp.Code)
	var w schedule.Window
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &w))
	assert.Equal(t, schedule.ViewMonth, w.View)
	assert.Equal(t, "July 2024", w.Label)

	resp = doJSON(router, http.MethodPost, "/schedule/navigate", gin.H{"action": "BACKWARDS"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestNow(t *testing.T) {
	router := setupStandaloneRouter(t)

	resp := doJSON(router, http.MethodGet, "/schedule/now", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var out handler.NowResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.True(t, out.Now.Equal(today))
}

func TestDerivedSchedule_IsReadOnly(t *testing.T) {
	ctx := context.Background()
	b := board.New(repository.NewColumnRepository(store.NewMemoryStore()))
	require.NoError(t, b.Load(ctx))
	task, err := b.AddTask(ctx, "todo", model.TaskDraft{
		Title: "Standup", Priority: model.PriorityLow, Date: "2024-06-03", StartTime: "09:00", EndTime: "09:15",
	})
	require.NoError(t, err)

	router := scheduleRouter(schedule.NewDerived(b, time.UTC))

	resp := doJSON(router, http.MethodGet, "/schedule?view=week&date=2024-06-03", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var view handler.ScheduleResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.True(t, view.ReadOnly)
	require.Len(t, view.Events, 1)
	assert.Equal(t, task.ID, view.Events[0].ID)
	assert.Equal(t, "rgb(156 163 175)", view.Events[0].Color)

	resp = doJSON(router, http.MethodPost, "/schedule/events", gin.H{
		"title": "x", "start": "2024-06-03T14:00:00Z", "end": "2024-06-03T15:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = doJSON(router, http.MethodDelete, "/schedule/events/"+task.ID, nil)
	assert.Equal(t, http.StatusConflict, resp.Code)
}
