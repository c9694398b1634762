package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniflow-app/uniflow-api/internal/middleware"
	"github.com/uniflow-app/uniflow-api/internal/models"
	"github.com/uniflow-app/uniflow-api/internal/service"
)

func userRouter(svc *service.StateService, claims *models.JWTClaims) *gin.Engine {
	h := NewUserHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ContextUserKey, claims)
		}
		c.Next()
	})
	r.PUT("/users/me", h.UpdateMe)
	return r
}

func signedInService(t *testing.T) *service.StateService {
	t.Helper()
	svc := newStateService(t)
	_, err := svc.SetUser(context.Background(), models.UserProfile{
		ID:    "u1",
		Email: "student@example.com",
		Name:  "Student",
	})
	require.NoError(t, err)
	return svc
}

func TestUserUpdateMe(t *testing.T) {
	svc := signedInService(t)
	router := userRouter(svc, &models.JWTClaims{UserID: "u1"})

	w := performRequest(router, http.MethodPut, "/users/me", gin.H{
		"id":         "ignored-by-design",
		"email":      "student@example.com",
		"name":       "Student",
		"university": "MIT",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var profile models.UserProfile
	decodeData(t, w, &profile)
	assert.Equal(t, "u1", profile.ID, "the id always comes from the token")
	assert.Equal(t, "MIT", profile.University)
}

func TestUserUpdateMeRequiresClaims(t *testing.T) {
	router := userRouter(signedInService(t), nil)

	w := performRequest(router, http.MethodPut, "/users/me", gin.H{"name": "Student"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}
