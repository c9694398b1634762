package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniflow-app/uniflow-api/internal/models"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestPostgresStateRepositoryEnsureSchema(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresStateRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS app_state").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositoryLoad(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresStateRepository(db)

	payload := []byte(`{"targetPercentage":75}`)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM app_state WHERE key = $1`)).
		WithArgs(models.StateKey).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositoryLoadMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresStateRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM app_state WHERE key = $1`)).
		WithArgs(models.StateKey).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStateMissing))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositoryLoadStoreFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresStateRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM app_state WHERE key = $1`)).
		WithArgs(models.StateKey).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErrors.FromError(err).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositorySaveUpserts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresStateRepository(db)

	payload := []byte(`{"targetPercentage":80}`)
	mock.ExpectExec("INSERT INTO app_state").
		WithArgs(models.StateKey, payload, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), payload))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositoryClear(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresStateRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM app_state WHERE key = $1`)).
		WithArgs(models.StateKey).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
