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

type userStateService interface {
	UpdateUser(ctx context.Context, user models.UserProfile) (service.MutationResult, error)
}

// UserHandler manages the signed-in profile record.
type UserHandler struct {
	state userStateService
}

// NewUserHandler constructs the handler.
func NewUserHandler(state userStateService) *UserHandler {
	return &UserHandler{state: state}
}

// UpdateMe godoc
// @Summary Replace the signed-in profile (e.g. editing the university)
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	claimsValue, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	claims, ok := claimsValue.(*models.JWTClaims)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid profile payload"))
		return
	}
	// The profile id comes from the token, not the payload.
	profile.ID = claims.UserID

	result, err := h.state.UpdateUser(c.Request.Context(), profile)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetPersisted(c, result.Persisted)
	response.JSON(c, http.StatusOK, result.State.User, middleware.ExtractMeta(c))
}
