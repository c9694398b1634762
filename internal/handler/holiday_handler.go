package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniflow-app/uniflow-api/internal/middleware"
	"github.com/uniflow-app/uniflow-api/internal/models"
	"github.com/uniflow-app/uniflow-api/internal/service"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
	"github.com/uniflow-app/uniflow-api/pkg/response"
)

type holidayStateService interface {
	Snapshot() *models.AppState
	AddHoliday(ctx context.Context, name, date string) (service.MutationResult, error)
	RemoveHoliday(ctx context.Context, id string) (service.MutationResult, error)
}

// HolidayHandler manages the date-sorted holiday collection.
type HolidayHandler struct {
	state holidayStateService
}

// NewHolidayHandler constructs the handler.
func NewHolidayHandler(state holidayStateService) *HolidayHandler {
	return &HolidayHandler{state: state}
}

type createHolidayRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
}

// List godoc
// @Summary List holidays, sorted ascending by date
// @Tags Holidays
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.state.Snapshot().Holidays)
}

// Create godoc
// @Summary Add a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var req createHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "name and date are required"))
		return
	}
	result, err := h.state.AddHoliday(c.Request.Context(), req.Name, req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.Created(c, result.State.Holidays, middleware.ExtractMeta(c))
}

// Delete godoc
// @Summary Remove a holiday; a stale id is a no-op
// @Tags Holidays
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	result, err := h.state.RemoveHoliday(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.JSON(c, http.StatusOK, result.State.Holidays, middleware.ExtractMeta(c))
}
