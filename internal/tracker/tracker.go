// ABOUTME: Tracker owns the in-session daily metric and injury collections.
// ABOUTME: Handles load from and best-effort persistence to a blob backend.
package tracker

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/recovery/internal/logging"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/storage"
)

// Collection names in the durable store.
const (
	MetricsCollection  = "recovery-metrics"
	InjuriesCollection = "injuries"
)

// ErrNotLoaded is reported by persistence attempts made before Load.
var ErrNotLoaded = errors.New("tracker not loaded")

// Collections lists every collection the tracker persists.
var Collections = []string{MetricsCollection, InjuriesCollection}

// Backend is the durable store the tracker mirrors its state into.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
}

// Seed is the data set used for a collection that has nothing persisted.
type Seed struct {
	Metrics  []models.DailyMetric
	Injuries []models.Injury
}

// Origin reports where a collection's state came from on Load.
type Origin string

const (
	OriginStored Origin = "stored"
	OriginSeed   Origin = "seed"
)

// LoadResult describes the outcome of Load per collection.
type LoadResult struct {
	Metrics  Origin
	Injuries Origin
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithSeed sets the fallback data used when a collection is absent or unreadable.
func WithSeed(seed Seed) Option {
	return func(t *Tracker) { t.seed = seed }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// WithIDGenerator overrides injury ID assignment.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(t *Tracker) { t.newID = fn }
}

// WithClock overrides the time source used for CreatedAt stamps.
func WithClock(fn func() time.Time) Option {
	return func(t *Tracker) { t.now = fn }
}

// Tracker is the single authoritative copy of the athlete's records for a session.
// A nil backend keeps everything in memory.
type Tracker struct {
	backend Backend
	seed    Seed
	logger  *log.Logger
	newID   func() uuid.UUID
	now     func() time.Time

	mu         sync.RWMutex
	metrics    []models.DailyMetric // newest first
	injuries   []models.Injury      // insertion order
	persistErr error
	loaded     bool
}

// New creates a tracker over backend. Call Load before reading.
func New(backend Backend, opts ...Option) *Tracker {
	t := &Tracker{
		backend: backend,
		logger:  logging.Discard(),
		newID:   uuid.New,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load replaces in-memory state with the backend's collections.
// A collection that is missing, unreadable or malformed is replaced by its seed.
func (t *Tracker) Load() LoadResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	var result LoadResult
	t.metrics, result.Metrics = loadCollection(t, MetricsCollection, decodeMetrics, t.seed.Metrics)
	t.injuries, result.Injuries = loadCollection(t, InjuriesCollection, decodeInjuries, t.seed.Injuries)
	sortMetrics(t.metrics)
	t.loaded = true
	t.persistErr = nil

	t.logger.Debug("loaded collections",
		"metrics", len(t.metrics), "metrics_origin", result.Metrics,
		"injuries", len(t.injuries), "injuries_origin", result.Injuries)
	return result
}

func loadCollection[T interface{ Clone() T }](t *Tracker, key string, decode func([]byte) ([]T, error), seed []T) ([]T, Origin) {
	if t.backend == nil {
		return cloneAll(seed), OriginSeed
	}

	data, err := t.backend.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		t.logger.Info("collection not found, using seed", "collection", key, "seed", len(seed))
		return cloneAll(seed), OriginSeed
	}
	if err != nil {
		t.logger.Warn("collection unavailable, using seed", "collection", key, "err", err)
		return cloneAll(seed), OriginSeed
	}

	items, err := decode(data)
	if err != nil {
		t.logger.Warn("collection malformed, using seed", "collection", key, "err", err)
		return cloneAll(seed), OriginSeed
	}
	return items, OriginStored
}

// persist writes both full collections. Failures are logged and retried on the next mutation.
// Nothing is written before Load, so stored collections are never replaced by unloaded state.
// Caller must hold t.mu.
func (t *Tracker) persist() {
	if t.backend == nil {
		return
	}
	if !t.loaded {
		t.persistErr = ErrNotLoaded
		t.logger.Warn("mutation before load, not persisted")
		return
	}

	t.persistErr = nil
	if err := t.writeCollection(MetricsCollection, func() ([]byte, error) { return encodeMetrics(t.metrics) }); err != nil {
		t.persistErr = err
	}
	if err := t.writeCollection(InjuriesCollection, func() ([]byte, error) { return encodeInjuries(t.injuries) }); err != nil {
		t.persistErr = errors.Join(t.persistErr, err)
	}
}

func (t *Tracker) writeCollection(key string, encode func() ([]byte, error)) error {
	data, err := encode()
	if err != nil {
		t.logger.Error("encode collection", "collection", key, "err", err)
		return err
	}
	if err := t.backend.Set(key, data); err != nil {
		t.logger.Warn("persist collection failed, keeping in-memory state", "collection", key, "err", err)
		return err
	}
	return nil
}

// LastPersistError returns the error from the most recent persistence attempt, if any.
func (t *Tracker) LastPersistError() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.persistErr
}

// Flush re-writes both collections now and returns any failure.
func (t *Tracker) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.persist()
	return t.persistErr
}

func cloneAll[T interface{ Clone() T }](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
