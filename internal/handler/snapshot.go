package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/snapshot"
	"github.com/dukerupert/flexidiet/internal/store"
)

// SnapshotRunner takes an on-demand database snapshot.
type SnapshotRunner interface {
	RunNow(ctx context.Context) (*model.Snapshot, error)
}

type SnapshotHandler struct {
	runner        SnapshotRunner
	snapshotStore *store.SnapshotStore
	logger        *slog.Logger
}

func NewSnapshotHandler(runner SnapshotRunner, ss *store.SnapshotStore, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{runner: runner, snapshotStore: ss, logger: logger.With("component", "handler.snapshot")}
}

func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshotStore.List(50)
	if err != nil {
		h.logger.Error("list snapshots", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	if snapshots == nil {
		snapshots = []model.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (h *SnapshotHandler) Create(w http.ResponseWriter, r *http.Request) {
	sn, err := h.runner.RunNow(r.Context())
	switch {
	case errors.Is(err, snapshot.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "snapshots are not configured")
		return
	case errors.Is(err, snapshot.ErrInProgress):
		writeError(w, http.StatusConflict, "a snapshot is already running")
		return
	case err != nil:
		h.logger.Error("run snapshot", "error", err)
		writeError(w, http.StatusBadGateway, "snapshot failed")
		return
	}
	writeJSON(w, http.StatusCreated, sn)
}
