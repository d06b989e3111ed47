package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/market-research-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS files (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	content      BLOB NOT NULL,
	content_type TEXT NOT NULL,
	size         INTEGER NOT NULL,
	metadata     TEXT NOT NULL DEFAULT '{}',
	created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_files_name ON files(name);
CREATE INDEX IF NOT EXISTS idx_files_created_at ON files(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveFile(ctx context.Context, name string, content []byte, contentType string, metadata map[string]string) (*model.GeneratedFile, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	if metadata == nil {
		metadata = map[string]string{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal metadata")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO files (id, name, content, content_type, size, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, content, contentType, int64(len(content)), string(metaJSON), now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert file %s", name)
	}

	return &model.GeneratedFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Metadata:    metadata,
		CreatedAt:   now,
	}, nil
}

func (s *SQLiteStore) ListFiles(ctx context.Context) ([]model.GeneratedFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, content_type, size, metadata, created_at FROM files ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list files")
	}
	defer rows.Close()

	var files []model.GeneratedFile
	for rows.Next() {
		var f model.GeneratedFile
		var metaJSON string
		if err := rows.Scan(&f.Name, &f.ContentType, &f.Size, &metaJSON, &f.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan file")
		}
		if err := json.Unmarshal([]byte(metaJSON), &f.Metadata); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal metadata")
		}
		files = append(files, f)
	}
	return files, eris.Wrap(rows.Err(), "sqlite: list files iterate")
}

func (s *SQLiteStore) GetFile(ctx context.Context, name string) (*model.File, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, content, content_type, size, metadata, created_at FROM files
		 WHERE name = ? ORDER BY created_at DESC LIMIT 1`,
		name,
	)

	var f model.File
	var metaJSON string
	err := row.Scan(&f.Name, &f.Content, &f.ContentType, &f.Size, &metaJSON, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("file not found: %s", name)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get file %s", name)
	}
	if err := json.Unmarshal([]byte(metaJSON), &f.Metadata); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal metadata")
	}
	return &f, nil
}
