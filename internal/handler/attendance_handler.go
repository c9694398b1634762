package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniflow-app/uniflow-api/internal/dto"
	"github.com/uniflow-app/uniflow-api/internal/middleware"
	"github.com/uniflow-app/uniflow-api/internal/models"
	"github.com/uniflow-app/uniflow-api/internal/service"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
	"github.com/uniflow-app/uniflow-api/pkg/response"
)

type attendanceStateService interface {
	Subject(id string) (*models.Subject, error)
	AddAttendanceRecord(ctx context.Context, subjectID, date string, status models.AttendanceStatus) (service.MutationResult, error)
	RemoveAttendanceRecord(ctx context.Context, subjectID, recordID string) (service.MutationResult, error)
}

// AttendanceHandler manages per-subject attendance logs.
type AttendanceHandler struct {
	state attendanceStateService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(state attendanceStateService) *AttendanceHandler {
	return &AttendanceHandler{state: state}
}

type addAttendanceRequest struct {
	Date   string                  `json:"date" binding:"required"`
	Status models.AttendanceStatus `json:"status" binding:"required"`
}

// List godoc
// @Summary A subject's attendance log with derived stats
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	sub, err := h.state.Subject(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SubjectDetail{
		Subject: *sub,
		Stats:   service.AttendanceStats(sub.Logs),
	})
}

// Add godoc
// @Summary Log a dated class for a subject
// @Tags Attendance
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /subjects/{id}/attendance [post]
func (h *AttendanceHandler) Add(c *gin.Context) {
	var req addAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date and status are required"))
		return
	}
	result, err := h.state.AddAttendanceRecord(c.Request.Context(), c.Param("id"), req.Date, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, result, c.Param("id"), http.StatusCreated)
}

// Remove godoc
// @Summary Remove one attendance record
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/attendance/{recordId} [delete]
func (h *AttendanceHandler) Remove(c *gin.Context) {
	result, err := h.state.RemoveAttendanceRecord(c.Request.Context(), c.Param("id"), c.Param("recordId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, result, c.Param("id"), http.StatusOK)
}

func (h *AttendanceHandler) respond(c *gin.Context, result service.MutationResult, subjectID string, status int) {
	sub := result.State.FindSubject(subjectID)
	if sub == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "subject not found"))
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.JSON(c, status, dto.SubjectDetail{
		Subject: *sub,
		Stats:   service.AttendanceStats(sub.Logs),
	}, middleware.ExtractMeta(c))
}
