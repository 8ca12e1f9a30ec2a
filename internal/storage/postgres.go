package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps the snapshot as a single jsonb row, upserted wholesale.
type PostgresStore struct {
	connection *sql.DB
}

func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	schema := `CREATE TABLE IF NOT EXISTS app_state (
        id INT PRIMARY KEY CHECK (id = 1),
        data JSONB NOT NULL,
        saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create app_state table: %w", err)
	}

	return &PostgresStore{connection: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (*Snapshot, error) {
	var data []byte
	query := `SELECT data FROM app_state WHERE id = 1`
	err := s.connection.QueryRowContext(ctx, query).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	snap.SchemaVersion = SchemaVersion
	snap.SavedAt = time.Now()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	query := `INSERT INTO app_state (id, data, saved_at)
              VALUES (1, $1, $2)
              ON CONFLICT (id) DO UPDATE
                SET data = EXCLUDED.data,
                    saved_at = EXCLUDED.saved_at`
	if _, err := s.connection.ExecContext(ctx, query, data, snap.SavedAt); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.connection.ExecContext(ctx, `DELETE FROM app_state WHERE id = 1`); err != nil {
		return fmt.Errorf("reset snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if err := s.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
		return err
	}
	return nil
}
