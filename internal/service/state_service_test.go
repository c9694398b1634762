package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniflow-app/uniflow-api/internal/models"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
)

type fakeStateRepo struct {
	data      []byte
	loadErr   error
	saveErr   error
	saveCalls int
}

func (r *fakeStateRepo) Load(ctx context.Context) ([]byte, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.data == nil {
		return nil, appErrors.ErrStateMissing
	}
	return r.data, nil
}

func (r *fakeStateRepo) Save(ctx context.Context, data []byte) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.data = data
	return nil
}

func (r *fakeStateRepo) Clear(ctx context.Context) error {
	r.data = nil
	return nil
}

func newTestStateService(repo StateRepository) *StateService {
	return NewStateService(StateServiceParams{Repo: repo})
}

func TestInitMissingDocumentStartsFromSeed(t *testing.T) {
	svc := newTestStateService(&fakeStateRepo{})

	require.NoError(t, svc.Init(context.Background()))

	state := svc.Snapshot()
	require.Len(t, state.Subjects, 1)
	assert.Equal(t, "Computer Networks", state.Subjects[0].Name)
	assert.Empty(t, state.Holidays)
	assert.Empty(t, state.Routine)
	assert.Equal(t, float64(models.DefaultTargetPercentage), state.TargetPercentage)
	assert.Nil(t, state.User)
}

func TestInitDoesNotEagerlyPersistSeed(t *testing.T) {
	repo := &fakeStateRepo{}
	svc := newTestStateService(repo)

	require.NoError(t, svc.Init(context.Background()))

	assert.Zero(t, repo.saveCalls)
	assert.Nil(t, repo.data)
}

func TestInitCorruptPayloadFallsBackToSeed(t *testing.T) {
	repo := &fakeStateRepo{data: []byte(`{"subjects": not-json`)}
	svc := newTestStateService(repo)

	require.NoError(t, svc.Init(context.Background()))

	state := svc.Snapshot()
	require.Len(t, state.Subjects, 1)
	assert.Equal(t, "Computer Networks", state.Subjects[0].Name)
}

func TestInitStoreFailureIsSurfaced(t *testing.T) {
	repo := &fakeStateRepo{loadErr: errors.New("connection refused")}
	svc := newTestStateService(repo)

	err := svc.Init(context.Background())

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErr.Code)
}

func TestMutationRoundTripsThroughStore(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStateRepo{}
	svc := newTestStateService(repo)
	require.NoError(t, svc.Init(ctx))

	result, err := svc.AddSubject(ctx, "Databases", "#FF0000")
	require.NoError(t, err)
	require.True(t, result.Applied)
	require.True(t, result.Persisted)
	require.NotNil(t, repo.data)

	// A fresh service over the same store sees the identical snapshot.
	reloaded := newTestStateService(repo)
	require.NoError(t, reloaded.Init(ctx))
	assert.Equal(t, result.State, reloaded.Snapshot())
}

func TestMutationSaveFailureKeepsStateAndFlagsPersisted(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStateRepo{saveErr: errors.New("disk full")}
	svc := newTestStateService(repo)
	require.NoError(t, svc.Init(ctx))

	result, err := svc.AddHoliday(ctx, "Diwali", "2025-10-20")
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.False(t, result.Persisted)

	state := svc.Snapshot()
	require.Len(t, state.Holidays, 1)
	assert.Equal(t, "Diwali", state.Holidays[0].Name)
}

func TestStaleIDMutationIsIdempotentNoOp(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStateRepo{}
	svc := newTestStateService(repo)
	require.NoError(t, svc.Init(ctx))

	before := svc.Snapshot()
	result, err := svc.DeleteSubject(ctx, "no-such-subject")
	require.NoError(t, err)

	assert.False(t, result.Applied)
	assert.True(t, result.Persisted)
	assert.Equal(t, before, result.State)
	assert.Zero(t, repo.saveCalls, "no-ops must not trigger a write")
}

func TestAddAttendanceRecordValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestStateService(&fakeStateRepo{})
	require.NoError(t, svc.Init(ctx))
	subjectID := svc.Snapshot().Subjects[0].ID

	_, err := svc.AddAttendanceRecord(ctx, subjectID, "20-03-2025", models.AttendanceStatusPresent)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.AddAttendanceRecord(ctx, subjectID, "2025-03-20", models.AttendanceStatus("X"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	result, err := svc.AddAttendanceRecord(ctx, subjectID, "2025-03-20", models.AttendanceStatusPresent)
	require.NoError(t, err)
	assert.True(t, result.Applied)
}

func TestAddRoutineEntryValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestStateService(&fakeStateRepo{})
	require.NoError(t, svc.Init(ctx))
	subjectID := svc.Snapshot().Subjects[0].ID

	_, err := svc.AddRoutineEntry(ctx, subjectID, "Caturday", "09:00", "10:00", "")
	require.Error(t, err)

	_, err = svc.AddRoutineEntry(ctx, subjectID, "Monday", "24:00", "10:00", "")
	require.Error(t, err)

	result, err := svc.AddRoutineEntry(ctx, subjectID, "Monday", "09:00", "10:00", "Lab 2")
	require.NoError(t, err)
	assert.True(t, result.Applied)
}

func TestResetReturnsSeedAndClearsStore(t *testing.T) {
	ctx := context.Background()
	repo := &fakeStateRepo{}
	svc := newTestStateService(repo)
	require.NoError(t, svc.Init(ctx))

	_, err := svc.AddSubject(ctx, "Algorithms", "")
	require.NoError(t, err)
	require.NotNil(t, repo.data)

	state, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Nil(t, repo.data)
	require.Len(t, state.Subjects, 1)
	assert.Equal(t, "Computer Networks", state.Subjects[0].Name)
}

func TestSnapshotIsACopy(t *testing.T) {
	svc := newTestStateService(&fakeStateRepo{})
	require.NoError(t, svc.Init(context.Background()))

	snap := svc.Snapshot()
	snap.Subjects[0].Name = "scribbled"

	assert.Equal(t, "Computer Networks", svc.Snapshot().Subjects[0].Name)
}

func TestSubjectLookup(t *testing.T) {
	svc := newTestStateService(&fakeStateRepo{})
	require.NoError(t, svc.Init(context.Background()))
	subjectID := svc.Snapshot().Subjects[0].ID

	sub, err := svc.Subject(subjectID)
	require.NoError(t, err)
	assert.Equal(t, "Computer Networks", sub.Name)

	_, err = svc.Subject("missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
