package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

const snapshotCols = `id, filename, object_key, size_bytes, status, error_message, completed_at, created_at`

func scanSnapshot(scanner interface{ Scan(...any) error }) (*model.Snapshot, error) {
	var sn model.Snapshot
	var completedAt sql.NullTime
	err := scanner.Scan(&sn.ID, &sn.Filename, &sn.ObjectKey, &sn.SizeBytes, &sn.Status, &sn.ErrorMessage, &completedAt, &sn.CreatedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		sn.CompletedAt = &completedAt.Time
	}
	return &sn, nil
}

func (s *SnapshotStore) Create(filename, objectKey string) (*model.Snapshot, error) {
	result, err := s.db.Exec(
		`INSERT INTO snapshots (filename, object_key, status, created_at) VALUES (?, ?, ?, ?)`,
		filename, objectKey, model.SnapshotStatusPending, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *SnapshotStore) GetByID(id int64) (*model.Snapshot, error) {
	row := s.db.QueryRow(`SELECT `+snapshotCols+` FROM snapshots WHERE id = ?`, id)
	sn, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %d: %w", id, err)
	}
	return sn, nil
}

func (s *SnapshotStore) List(limit int) ([]model.Snapshot, error) {
	rows, err := s.db.Query(`SELECT `+snapshotCols+` FROM snapshots ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []model.Snapshot
	for rows.Next() {
		sn, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, *sn)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) UpdateStatus(id int64, status model.SnapshotStatus, errorMsg string) error {
	_, err := s.db.Exec(`UPDATE snapshots SET status = ?, error_message = ? WHERE id = ?`, status, errorMsg, id)
	if err != nil {
		return fmt.Errorf("update snapshot status: %w", err)
	}
	return nil
}

func (s *SnapshotStore) UpdateCompleted(id, sizeBytes int64) error {
	_, err := s.db.Exec(
		`UPDATE snapshots SET status = ?, size_bytes = ?, completed_at = ? WHERE id = ?`,
		model.SnapshotStatusCompleted, sizeBytes, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update snapshot completed: %w", err)
	}
	return nil
}

// DeleteOlderThan removes snapshot records created before cutoff and
// returns the object keys they referenced.
func (s *SnapshotStore) DeleteOlderThan(cutoff time.Time) ([]string, error) {
	rows, err := s.db.Query(`SELECT object_key FROM snapshots WHERE created_at < ?`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list old snapshots: %w", err)
	}
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan snapshot key: %w", err)
		}
		keys = append(keys, k)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE created_at < ?`, cutoff); err != nil {
		return nil, fmt.Errorf("delete old snapshots: %w", err)
	}
	return keys, nil
}
