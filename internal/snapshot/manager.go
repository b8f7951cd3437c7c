// Package snapshot takes encrypted copies of the SQLite database and stores
// them in S3-compatible object storage.
package snapshot

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dukerupert/flexidiet/internal/metrics"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
)

var (
	ErrNotConfigured = errors.New("snapshots not configured")
	ErrInProgress    = errors.New("snapshot already in progress")
)

// ObjectStore is the subset of the S3 client the manager uses.
type ObjectStore interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures NewS3Client.
type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Client builds a path-style client suitable for S3-compatible stores.
func NewS3Client(o S3Options) *s3.Client {
	opts := s3.Options{
		Region:       o.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		UsePathStyle: true,
	}
	if o.Endpoint != "" {
		opts.BaseEndpoint = aws.String(o.Endpoint)
	}
	return s3.New(opts)
}

type Config struct {
	Bucket     string
	Prefix     string
	Passphrase string
	Interval   time.Duration
	Retention  time.Duration
}

// Manager runs snapshots on a schedule and on demand.
type Manager struct {
	cfg     Config
	db      *sql.DB
	store   *store.SnapshotStore
	client  ObjectStore
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager returns a manager. A nil client disables snapshots.
func NewManager(cfg Config, db *sql.DB, ss *store.SnapshotStore, client ObjectStore, m *metrics.Metrics, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:     cfg,
		db:      db,
		store:   ss,
		client:  client,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Enabled reports whether the manager has storage and a passphrase.
func (m *Manager) Enabled() bool {
	return m.client != nil && m.cfg.Bucket != "" && m.cfg.Passphrase != ""
}

// Start runs a snapshot and retention sweep every Interval until Stop or
// ctx cancellation. It is a no-op when disabled.
func (m *Manager) Start(ctx context.Context) {
	if !m.Enabled() || m.cfg.Interval <= 0 {
		return
	}

	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := m.RunNow(ctx); err != nil && !errors.Is(err, ErrInProgress) {
					m.logger.Error("scheduled snapshot failed", "error", err)
				}
				if err := m.Cleanup(ctx); err != nil {
					m.logger.Error("snapshot cleanup failed", "error", err)
				}
			}
		}
	}()
}

// Stop cancels the schedule and waits for the loop to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// RunNow takes one snapshot. Concurrent calls return ErrInProgress.
func (m *Manager) RunNow(ctx context.Context) (*model.Snapshot, error) {
	if !m.Enabled() {
		return nil, ErrNotConfigured
	}
	if !m.running.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer m.running.Store(false)

	ts := m.now().UTC().Format("2006-01-02T150405Z")
	filename := fmt.Sprintf("snapshot-%s-%s.db.enc", ts, uuid.NewString()[:8])
	key := m.cfg.Prefix + filename

	record, err := m.store.Create(filename, key)
	if err != nil {
		m.metrics.SnapshotFinished(string(model.SnapshotStatusFailed), 0)
		return nil, fmt.Errorf("create snapshot record: %w", err)
	}
	log := m.logger.With("snapshot_id", record.ID, "key", key)

	size, err := m.upload(ctx, record.ID, key)
	if err != nil {
		if uerr := m.store.UpdateStatus(record.ID, model.SnapshotStatusFailed, err.Error()); uerr != nil {
			log.Error("record snapshot failure", "error", uerr)
		}
		m.metrics.SnapshotFinished(string(model.SnapshotStatusFailed), 0)
		return nil, err
	}

	if err := m.store.UpdateCompleted(record.ID, size); err != nil {
		return nil, fmt.Errorf("record snapshot completion: %w", err)
	}
	m.metrics.SnapshotFinished(string(model.SnapshotStatusCompleted), size)
	log.Info("snapshot uploaded", "size_bytes", size)

	return m.store.GetByID(record.ID)
}

func (m *Manager) upload(ctx context.Context, id int64, key string) (int64, error) {
	dir, err := os.MkdirTemp("", "flexidiet-snapshot-")
	if err != nil {
		return 0, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	copyPath := filepath.Join(dir, fmt.Sprintf("snapshot-%d.db", id))
	if _, err := m.db.ExecContext(ctx, `VACUUM INTO '`+strings.ReplaceAll(copyPath, "'", "''")+`'`); err != nil {
		return 0, fmt.Errorf("vacuum into: %w", err)
	}

	plaintext, err := os.ReadFile(copyPath)
	if err != nil {
		return 0, fmt.Errorf("read snapshot copy: %w", err)
	}
	sealed, err := Encrypt(plaintext, m.cfg.Passphrase)
	if err != nil {
		return 0, fmt.Errorf("encrypt: %w", err)
	}

	if err := m.store.UpdateStatus(id, model.SnapshotStatusUploading, ""); err != nil {
		return 0, err
	}
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(sealed),
		ContentLength: aws.Int64(int64(len(sealed))),
	})
	if err != nil {
		return 0, fmt.Errorf("upload to s3: %w", err)
	}
	return int64(len(sealed)), nil
}

// Cleanup deletes snapshots older than Retention from the database and the
// bucket. Object deletion failures are logged, not returned.
func (m *Manager) Cleanup(ctx context.Context) error {
	if !m.Enabled() || m.cfg.Retention <= 0 {
		return nil
	}

	keys, err := m.store.DeleteOlderThan(m.now().UTC().Add(-m.cfg.Retention))
	if err != nil {
		return fmt.Errorf("delete old snapshots: %w", err)
	}

	for _, key := range keys {
		if _, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(m.cfg.Bucket),
			Key:    aws.String(key),
		}); err != nil {
			m.logger.Warn("delete snapshot object", "key", key, "error", err)
		}
	}
	return nil
}
