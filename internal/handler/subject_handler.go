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

type subjectStateService interface {
	Snapshot() *models.AppState
	AddSubject(ctx context.Context, name, color string) (service.MutationResult, error)
	UpdateSubject(ctx context.Context, subject models.Subject) (service.MutationResult, error)
	DeleteSubject(ctx context.Context, id string) (service.MutationResult, error)
	AddSyllabusItem(ctx context.Context, subjectID, title string) (service.MutationResult, error)
	ToggleSyllabusItem(ctx context.Context, subjectID, itemID string) (service.MutationResult, error)
	RemoveSyllabusItem(ctx context.Context, subjectID, itemID string) (service.MutationResult, error)
}

// SubjectHandler manages subjects and their syllabus topics.
type SubjectHandler struct {
	state subjectStateService
}

// NewSubjectHandler constructs the handler.
func NewSubjectHandler(state subjectStateService) *SubjectHandler {
	return &SubjectHandler{state: state}
}

type createSubjectRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type addSyllabusItemRequest struct {
	Title string `json:"title" binding:"required"`
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.state.Snapshot().Subjects)
}

// Create godoc
// @Summary Add a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "name is required"))
		return
	}
	result, err := h.state.AddSubject(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.Created(c, result.State.Subjects, middleware.ExtractMeta(c))
}

// Update godoc
// @Summary Replace a subject record wholesale
// @Tags Subjects
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	var subject models.Subject
	if err := c.ShouldBindJSON(&subject); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid subject payload"))
		return
	}
	subject.ID = c.Param("id")
	result, err := h.state.UpdateSubject(c.Request.Context(), subject)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.JSON(c, http.StatusOK, result.State.Subjects, middleware.ExtractMeta(c))
}

// Delete godoc
// @Summary Delete a subject and, by ownership, its logs and syllabus
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	result, err := h.state.DeleteSubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.JSON(c, http.StatusOK, result.State.Subjects, middleware.ExtractMeta(c))
}

// AddSyllabusItem godoc
// @Summary Append a topic to a subject's syllabus
// @Tags Subjects
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /subjects/{id}/syllabus [post]
func (h *SubjectHandler) AddSyllabusItem(c *gin.Context) {
	var req addSyllabusItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "title is required"))
		return
	}
	result, err := h.state.AddSyllabusItem(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSubject(c, result, c.Param("id"), http.StatusCreated)
}

// ToggleSyllabusItem godoc
// @Summary Flip a topic's completion flag
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/syllabus/{itemId} [patch]
func (h *SubjectHandler) ToggleSyllabusItem(c *gin.Context) {
	result, err := h.state.ToggleSyllabusItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSubject(c, result, c.Param("id"), http.StatusOK)
}

// RemoveSyllabusItem godoc
// @Summary Remove a topic from a subject's syllabus
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/syllabus/{itemId} [delete]
func (h *SubjectHandler) RemoveSyllabusItem(c *gin.Context) {
	result, err := h.state.RemoveSyllabusItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSubject(c, result, c.Param("id"), http.StatusOK)
}

// A stale subject id is an idempotent no-op at the state level, but a
// scoped read of a subject that does not exist is a plain 404.
func (h *SubjectHandler) respondWithSubject(c *gin.Context, result service.MutationResult, subjectID string, status int) {
	sub := result.State.FindSubject(subjectID)
	if sub == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "subject not found"))
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.JSON(c, status, sub, middleware.ExtractMeta(c))
}
