package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniflow-app/uniflow-api/internal/dto"
	"github.com/uniflow-app/uniflow-api/internal/models"
	"github.com/uniflow-app/uniflow-api/internal/service"
)

func attendanceRouter(svc *service.StateService) *gin.Engine {
	h := NewAttendanceHandler(svc)
	r := gin.New()
	r.GET("/subjects/:id/attendance", h.List)
	r.POST("/subjects/:id/attendance", h.Add)
	r.DELETE("/subjects/:id/attendance/:recordId", h.Remove)
	return r
}

func TestAttendanceListWithStats(t *testing.T) {
	ctx := context.Background()
	svc := newStateService(t)
	subjectID := svc.Snapshot().Subjects[0].ID
	_, err := svc.AddAttendanceRecord(ctx, subjectID, "2025-03-01", models.AttendanceStatusPresent)
	require.NoError(t, err)
	_, err = svc.AddAttendanceRecord(ctx, subjectID, "2025-03-02", models.AttendanceStatusAbsent)
	require.NoError(t, err)
	router := attendanceRouter(svc)

	w := performRequest(router, http.MethodGet, "/subjects/"+subjectID+"/attendance", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.SubjectDetail
	decodeData(t, w, &detail)
	assert.Len(t, detail.Logs, 2)
	assert.Equal(t, 2, detail.Stats.Total)
	assert.Equal(t, 50.0, detail.Stats.Percentage)
}

func TestAttendanceListUnknownSubject(t *testing.T) {
	router := attendanceRouter(newStateService(t))

	w := performRequest(router, http.MethodGet, "/subjects/missing/attendance", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestAttendanceAdd(t *testing.T) {
	svc := newStateService(t)
	subjectID := svc.Snapshot().Subjects[0].ID
	router := attendanceRouter(svc)

	w := performRequest(router, http.MethodPost, "/subjects/"+subjectID+"/attendance",
		gin.H{"date": "2025-03-10", "status": "P"})

	require.Equal(t, http.StatusCreated, w.Code)
	var detail dto.SubjectDetail
	env := decodeData(t, w, &detail)
	require.Len(t, detail.Logs, 1)
	assert.Equal(t, models.AttendanceStatusPresent, detail.Logs[0].Status)
	assert.Equal(t, 100.0, detail.Stats.Percentage)
	assert.Equal(t, true, env.Meta["persisted"])
}

func TestAttendanceAddInvalidStatus(t *testing.T) {
	svc := newStateService(t)
	subjectID := svc.Snapshot().Subjects[0].ID
	router := attendanceRouter(svc)

	w := performRequest(router, http.MethodPost, "/subjects/"+subjectID+"/attendance",
		gin.H{"date": "2025-03-10", "status": "X"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestAttendanceAddInvalidDate(t *testing.T) {
	svc := newStateService(t)
	subjectID := svc.Snapshot().Subjects[0].ID
	router := attendanceRouter(svc)

	w := performRequest(router, http.MethodPost, "/subjects/"+subjectID+"/attendance",
		gin.H{"date": "10-03-2025", "status": "P"})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceRemoveStaleRecordIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := newStateService(t)
	subjectID := svc.Snapshot().Subjects[0].ID
	_, err := svc.AddAttendanceRecord(ctx, subjectID, "2025-03-01", models.AttendanceStatusPresent)
	require.NoError(t, err)
	router := attendanceRouter(svc)

	w := performRequest(router, http.MethodDelete, "/subjects/"+subjectID+"/attendance/missing", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.SubjectDetail
	decodeData(t, w, &detail)
	assert.Len(t, detail.Logs, 1)
}

func TestAttendanceRemove(t *testing.T) {
	ctx := context.Background()
	svc := newStateService(t)
	subjectID := svc.Snapshot().Subjects[0].ID
	result, err := svc.AddAttendanceRecord(ctx, subjectID, "2025-03-01", models.AttendanceStatusPresent)
	require.NoError(t, err)
	recordID := result.State.Subjects[0].Logs[0].ID
	router := attendanceRouter(svc)

	w := performRequest(router, http.MethodDelete, "/subjects/"+subjectID+"/attendance/"+recordID, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.SubjectDetail
	decodeData(t, w, &detail)
	assert.Empty(t, detail.Logs)
}
