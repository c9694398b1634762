package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uniflow-app/uniflow-api/internal/middleware"
	"github.com/uniflow-app/uniflow-api/internal/models"
	"github.com/uniflow-app/uniflow-api/internal/service"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
	"github.com/uniflow-app/uniflow-api/pkg/response"
)

type routineStateService interface {
	Snapshot() *models.AppState
	AddRoutineEntry(ctx context.Context, subjectID, day, startTime, endTime, room string) (service.MutationResult, error)
	RemoveRoutineEntry(ctx context.Context, id string) (service.MutationResult, error)
}

type todayProvider interface {
	Today() string
}

// RoutineHandler manages the weekly class routine.
type RoutineHandler struct {
	state routineStateService
	clock todayProvider
}

// NewRoutineHandler constructs the handler.
func NewRoutineHandler(state routineStateService, clock todayProvider) *RoutineHandler {
	return &RoutineHandler{state: state, clock: clock}
}

type createRoutineRequest struct {
	SubjectID string `json:"subjectId" binding:"required"`
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Room      string `json:"room"`
}

// List godoc
// @Summary Routine entries, optionally resolved for one day
// @Tags Routine
// @Produce json
// @Param day query string false "Weekday name"
// @Success 200 {object} response.Envelope
// @Router /routine [get]
func (h *RoutineHandler) List(c *gin.Context) {
	state := h.state.Snapshot()
	day := strings.TrimSpace(c.Query("day"))
	if day == "" {
		response.JSON(c, http.StatusOK, state.Routine)
		return
	}
	if !models.ValidDay(day) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "day must be a weekday name"))
		return
	}
	response.JSON(c, http.StatusOK, service.ScheduleFor(state.Routine, state.Subjects, day))
}

// Today godoc
// @Summary Today's schedule, time-sorted with resolved subjects
// @Tags Routine
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /routine/today [get]
func (h *RoutineHandler) Today(c *gin.Context) {
	state := h.state.Snapshot()
	day := h.clock.Today()
	response.JSON(c, http.StatusOK, gin.H{
		"day":      day,
		"schedule": service.ScheduleFor(state.Routine, state.Subjects, day),
	})
}

// Create godoc
// @Summary Add a weekly class occurrence
// @Tags Routine
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /routine [post]
func (h *RoutineHandler) Create(c *gin.Context) {
	var req createRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subjectId, day, startTime and endTime are required"))
		return
	}
	result, err := h.state.AddRoutineEntry(c.Request.Context(), req.SubjectID, req.Day, req.StartTime, req.EndTime, req.Room)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.Created(c, result.State.Routine, middleware.ExtractMeta(c))
}

// Delete godoc
// @Summary Remove a routine entry; a stale id is a no-op
// @Tags Routine
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /routine/{id} [delete]
func (h *RoutineHandler) Delete(c *gin.Context) {
	result, err := h.state.RemoveRoutineEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.JSON(c, http.StatusOK, result.State.Routine, middleware.ExtractMeta(c))
}
