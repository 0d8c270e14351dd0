// Package preview keeps the latest finished terrain render available while
// new parameter sets are generated in the background.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/VoidMesh/worldgen/internal/encoder"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

// ErrNoSnapshot is returned before the first pass has finished.
var ErrNoSnapshot = errors.New("no preview snapshot available yet")

// Snapshot is one completed render. Snapshots are immutable once published.
type Snapshot struct {
	ID          uuid.UUID
	Config      terrain.GenerationConfig
	PNG         []byte
	Hash        uint64
	Duration    time.Duration
	GeneratedAt time.Time
	Stats       terrain.Stats
}

// ETag returns a strong HTTP entity tag derived from the PNG hash.
func (s *Snapshot) ETag() string {
	return fmt.Sprintf("%q", fmt.Sprintf("%016x", s.Hash))
}

// Worker renders submitted configs one at a time. Only the most recent
// submission is kept; older pending requests are dropped.
type Worker struct {
	generator *terrain.Generator
	encoder   *encoder.Encoder
	logger    *log.Logger

	mu      sync.Mutex
	pending *terrain.GenerationConfig
	notify  chan struct{}

	latest atomic.Pointer[Snapshot]
	passes atomic.Uint64
}

// NewWorker creates a worker that renders with gen.
func NewWorker(gen *terrain.Generator) *Worker {
	return &Worker{
		generator: gen,
		encoder:   encoder.NewEncoder(png.BestSpeed),
		logger:    logging.WithComponent("preview"),
		notify:    make(chan struct{}, 1),
	}
}

// Submit validates cfg and queues it, replacing any request not yet started.
// It never blocks.
func (w *Worker) Submit(cfg terrain.GenerationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	w.pending = &cfg
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}

	w.logger.Debug("Preview requested", "seed", cfg.Seed, "width", cfg.Width, "height", cfg.Height)
	return nil
}

// Run processes submissions until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("Preview worker started")
	defer w.logger.Info("Preview worker stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.notify:
		}

		cfg, ok := w.take()
		if !ok {
			continue
		}

		snap, err := w.Render(cfg)
		if err != nil {
			w.logger.Error("Preview render failed", "seed", cfg.Seed, "error", err)
			continue
		}
		w.latest.Store(snap)
		w.passes.Add(1)

		w.logger.Debug("Preview published",
			"id", snap.ID,
			"hash", fmt.Sprintf("%016x", snap.Hash),
			"duration", snap.Duration,
		)
	}
}

func (w *Worker) take() (terrain.GenerationConfig, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return terrain.GenerationConfig{}, false
	}
	cfg := *w.pending
	w.pending = nil
	return cfg, true
}

// Render runs one full pass and encodes it, without publishing the result.
func (w *Worker) Render(cfg terrain.GenerationConfig) (*Snapshot, error) {
	start := time.Now()

	raster, err := w.generator.Generate(&cfg)
	if err != nil {
		return nil, err
	}
	data, err := w.encoder.Encode(raster)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:          uuid.New(),
		Config:      cfg,
		PNG:         data,
		Hash:        xxhash.Sum64(data),
		Duration:    time.Since(start),
		GeneratedAt: time.Now().UTC(),
		Stats:       raster.Stats,
	}, nil
}

// Latest returns the most recently published snapshot.
func (w *Worker) Latest() (*Snapshot, error) {
	snap := w.latest.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Passes returns how many snapshots have been published.
func (w *Worker) Passes() uint64 {
	return w.passes.Load()
}
