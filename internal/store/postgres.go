package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/market-research-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return NewPostgresStore(pool), nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS files (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	content      BYTEA NOT NULL,
	content_type TEXT NOT NULL,
	size         BIGINT NOT NULL,
	metadata     JSONB NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_files_name ON files(name);
CREATE INDEX IF NOT EXISTS idx_files_created_at ON files(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveFile(ctx context.Context, name string, content []byte, contentType string, metadata map[string]string) (*model.GeneratedFile, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	if metadata == nil {
		metadata = map[string]string{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal metadata")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO files (id, name, content, content_type, size, metadata, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, name, content, contentType, int64(len(content)), string(metaJSON), now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert file %s", name)
	}

	return &model.GeneratedFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Metadata:    metadata,
		CreatedAt:   now,
	}, nil
}

func (s *PostgresStore) ListFiles(ctx context.Context) ([]model.GeneratedFile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, content_type, size, metadata, created_at FROM files ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list files")
	}
	defer rows.Close()

	var files []model.GeneratedFile
	for rows.Next() {
		var f model.GeneratedFile
		var metaJSON []byte
		if err := rows.Scan(&f.Name, &f.ContentType, &f.Size, &metaJSON, &f.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan file")
		}
		if err := json.Unmarshal(metaJSON, &f.Metadata); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal metadata")
		}
		files = append(files, f)
	}
	return files, eris.Wrap(rows.Err(), "postgres: list files iterate")
}

func (s *PostgresStore) GetFile(ctx context.Context, name string) (*model.File, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT name, content, content_type, size, metadata, created_at FROM files
		 WHERE name = $1 ORDER BY created_at DESC LIMIT 1`,
		name,
	)

	var f model.File
	var metaJSON []byte
	err := row.Scan(&f.Name, &f.Content, &f.ContentType, &f.Size, &metaJSON, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("file not found: %s", name)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get file %s", name)
	}
	if err := json.Unmarshal(metaJSON, &f.Metadata); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal metadata")
	}
	return &f, nil
}
