package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniflow-app/uniflow-api/internal/models"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
)

type fakeAuthService struct {
	loginReq  *models.LoginRequest
	loginErr  error
	logoutErr error
	loggedOut bool
}

func (s *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	s.loginReq = &req
	return &models.LoginResponse{
		AccessToken: "token-123",
		ExpiresAt:   1735689600,
		User: &models.UserProfile{
			ID:         req.ID,
			Email:      req.Email,
			Name:       req.Name,
			University: models.DefaultUniversity,
		},
	}, nil
}

func (s *fakeAuthService) Logout(ctx context.Context) error {
	if s.logoutErr != nil {
		return s.logoutErr
	}
	s.loggedOut = true
	return nil
}

func authRouter(svc authService) *gin.Engine {
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	return r
}

func TestAuthLogin(t *testing.T) {
	svc := &fakeAuthService{}
	router := authRouter(svc)

	w := performRequest(router, http.MethodPost, "/auth/login", gin.H{
		"id":    "google-123",
		"email": "student@example.com",
		"name":  "Student",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.LoginResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "token-123", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.DefaultUniversity, resp.User.University)
	require.NotNil(t, svc.loginReq)
	assert.Equal(t, "google-123", svc.loginReq.ID)
}

func TestAuthLoginRejectsMissingFields(t *testing.T) {
	router := authRouter(&fakeAuthService{})

	w := performRequest(router, http.MethodPost, "/auth/login", gin.H{"email": "student@example.com"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestAuthLoginServiceError(t *testing.T) {
	router := authRouter(&fakeAuthService{loginErr: appErrors.ErrValidation})

	w := performRequest(router, http.MethodPost, "/auth/login", gin.H{
		"id":    "google-123",
		"email": "student@example.com",
		"name":  "Student",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthLogout(t *testing.T) {
	svc := &fakeAuthService{}
	router := authRouter(svc)

	w := performRequest(router, http.MethodPost, "/auth/logout", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, svc.loggedOut)
}
