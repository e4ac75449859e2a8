package hexcrawl

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/wildlands/hexcrawl-api/internal/errors"
	"github.com/wildlands/hexcrawl-api/internal/pkg/clock"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS hexcrawls (
	id         TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteRepository is a file-backed Repository for campaigns persisted to
// disk rather than a shared Redis.
type SQLiteRepository struct {
	db    *sqlx.DB
	clock clock.Clock
}

// SQLiteConfig contains configuration for the SQLite hexcrawl repository.
type SQLiteConfig struct {
	// Path is the database file path. ":memory:" is accepted for tests.
	Path string

	// Clock defaults to the system clock.
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// NewSQLite opens (or creates) the database file and ensures the schema.
func NewSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	db, err := sqlx.Open("sqlite", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate sqlite schema")
	}

	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the underlying database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	var exists int
	err := r.db.GetContext(ctx, &exists,
		"SELECT COUNT(1) FROM hexcrawls WHERE id = ?", input.State.ID)
	if err != nil {
		return nil, errors.Wrap(err, errStoreCheck)
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("hexcrawl with ID %s already exists", input.State.ID)
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrap(err, errMarshal)
	}

	now := r.clock.Now().Unix()
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO hexcrawls (id, state, created_at, updated_at) VALUES (?, ?, ?, ?)",
		input.State.ID, string(data), now, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create hexcrawl")
	}

	return &CreateOutput{State: input.State}, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	var raw string
	err := r.db.GetContext(ctx, &raw,
		"SELECT state FROM hexcrawls WHERE id = ?", input.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get hexcrawl")
	}

	state, err := decodeState([]byte(raw), input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{State: state}, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrap(err, errMarshal)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE hexcrawls SET state = ?, updated_at = ? WHERE id = ?",
		string(data), r.clock.Now().Unix(), input.State.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update hexcrawl")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update hexcrawl")
	}
	if affected == 0 {
		return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.State.ID)
	}

	return &UpdateOutput{State: input.State}, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	result, err := r.db.ExecContext(ctx,
		"DELETE FROM hexcrawls WHERE id = ?", input.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete hexcrawl")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete hexcrawl")
	}
	if affected == 0 {
		return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
