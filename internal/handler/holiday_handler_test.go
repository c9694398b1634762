package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniflow-app/uniflow-api/internal/models"
	"github.com/uniflow-app/uniflow-api/internal/service"
)

func holidayRouter(svc *service.StateService) *gin.Engine {
	h := NewHolidayHandler(svc)
	r := gin.New()
	r.GET("/holidays", h.List)
	r.POST("/holidays", h.Create)
	r.DELETE("/holidays/:id", h.Delete)
	return r
}

func TestHolidayCreateKeepsDatesSorted(t *testing.T) {
	svc := newStateService(t)
	router := holidayRouter(svc)

	w := performRequest(router, http.MethodPost, "/holidays", gin.H{"name": "Mid-term Break", "date": "2025-10-01"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/holidays", gin.H{"name": "Founders Day", "date": "2025-02-14"})
	require.Equal(t, http.StatusCreated, w.Code)

	var holidays []models.Holiday
	decodeData(t, w, &holidays)
	require.Len(t, holidays, 2)
	assert.Equal(t, "Founders Day", holidays[0].Name)
	assert.Equal(t, "Mid-term Break", holidays[1].Name)
}

func TestHolidayCreateRejectsBadDate(t *testing.T) {
	router := holidayRouter(newStateService(t))

	w := performRequest(router, http.MethodPost, "/holidays", gin.H{"name": "Oops", "date": "01/10/2025"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestHolidayCreateRequiresNameAndDate(t *testing.T) {
	router := holidayRouter(newStateService(t))

	w := performRequest(router, http.MethodPost, "/holidays", gin.H{"name": "No Date"})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHolidayList(t *testing.T) {
	svc := newStateService(t)
	_, err := svc.AddHoliday(context.Background(), "Diwali", "2025-10-20")
	require.NoError(t, err)
	router := holidayRouter(svc)

	w := performRequest(router, http.MethodGet, "/holidays", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var holidays []models.Holiday
	decodeData(t, w, &holidays)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Diwali", holidays[0].Name)
}

func TestHolidayDeleteStaleIDIsNoOp(t *testing.T) {
	svc := newStateService(t)
	_, err := svc.AddHoliday(context.Background(), "Diwali", "2025-10-20")
	require.NoError(t, err)
	router := holidayRouter(svc)

	w := performRequest(router, http.MethodDelete, "/holidays/missing", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var holidays []models.Holiday
	decodeData(t, w, &holidays)
	assert.Len(t, holidays, 1)
}

func TestHolidayDelete(t *testing.T) {
	svc := newStateService(t)
	result, err := svc.AddHoliday(context.Background(), "Diwali", "2025-10-20")
	require.NoError(t, err)
	holidayID := result.State.Holidays[0].ID
	router := holidayRouter(svc)

	w := performRequest(router, http.MethodDelete, "/holidays/"+holidayID, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var holidays []models.Holiday
	decodeData(t, w, &holidays)
	assert.Empty(t, holidays)
}
