package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/uniflow-app/uniflow-api/internal/models"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
)

// PostgresStateRepository keeps the state document as one row in an
// app_state table, keyed by the versioned document key.
type PostgresStateRepository struct {
	db *sqlx.DB
}

// NewPostgresStateRepository constructs a Postgres-backed state repository.
func NewPostgresStateRepository(db *sqlx.DB) *PostgresStateRepository {
	return &PostgresStateRepository{db: db}
}

// EnsureSchema creates the backing table when absent.
func (r *PostgresStateRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS app_state (key TEXT PRIMARY KEY, payload JSONB NOT NULL, updated_at TIMESTAMPTZ NOT NULL)`)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "ensure app_state table")
	}
	return nil
}

// Load fetches the document row, returning ErrStateMissing when absent.
func (r *PostgresStateRepository) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM app_state WHERE key = $1`, models.StateKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStateMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "select app_state")
	}
	return payload, nil
}

// Save upserts the single document row.
func (r *PostgresStateRepository) Save(ctx context.Context, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, payload, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		models.StateKey, data, time.Now().UTC())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "upsert app_state")
	}
	return nil
}

// Clear deletes the document row.
func (r *PostgresStateRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = $1`, models.StateKey)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "delete app_state")
	}
	return nil
}
