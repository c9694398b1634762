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

type stateAccess interface {
	Snapshot() *models.AppState
	Reset(ctx context.Context) (*models.AppState, error)
	SetTargetPercentage(ctx context.Context, target float64) (service.MutationResult, error)
}

// StateHandler exposes the whole-state operations.
type StateHandler struct {
	state stateAccess
}

// NewStateHandler constructs the handler.
func NewStateHandler(state stateAccess) *StateHandler {
	return &StateHandler{state: state}
}

type setTargetRequest struct {
	Target *float64 `json:"target" binding:"required"`
}

// Get godoc
// @Summary Full application state snapshot
// @Tags State
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /state [get]
func (h *StateHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.state.Snapshot())
}

// Reset godoc
// @Summary Clear the stored document and return to the seed state
// @Tags State
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /state [delete]
func (h *StateHandler) Reset(c *gin.Context) {
	state, err := h.state.Reset(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state)
}

// SetTarget godoc
// @Summary Update the attendance target percentage
// @Tags State
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /state/target [put]
func (h *StateHandler) SetTarget(c *gin.Context) {
	var req setTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "target is required"))
		return
	}
	result, err := h.state.SetTargetPercentage(c.Request.Context(), *req.Target)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.JSON(c, http.StatusOK, gin.H{"targetPercentage": result.State.TargetPercentage}, middleware.ExtractMeta(c))
}
