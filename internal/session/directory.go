// Package session holds the state of one directory session: the dataset,
// loaded exactly once, and the views derived from it for any criteria.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"logias/internal/filter"
	"logias/internal/loader"
	"logias/internal/metrics"
	"logias/internal/models"
	"logias/internal/notify"
)

var (
	// ErrNotReady is returned by lookups before the dataset is loaded.
	ErrNotReady = errors.New("dataset not loaded")
	// ErrNotFound is returned when no record has the requested numero.
	ErrNotFound = errors.New("lodge not found")
)

// Status is the lifecycle of the dataset.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Directory is the session state. The dataset is written once, when the
// load resolves, and only read afterwards.
type Directory struct {
	source   loader.Source
	notifier notify.Notifier
	log      *zap.Logger

	once sync.Once
	done chan struct{}

	mu      sync.RWMutex
	status  Status
	loadErr error
	memo    *filter.Memo
	byNum   map[int]int
}

// New returns a Directory in the loading state. Nothing is fetched until
// Start or Load is called.
func New(source loader.Source, notifier notify.Notifier, log *zap.Logger) *Directory {
	return &Directory{
		source:   source,
		notifier: notifier,
		log:      log,
		done:     make(chan struct{}),
		status:   StatusLoading,
		memo:     filter.NewMemo(nil),
	}
}

// Start loads the dataset in the background.
func (d *Directory) Start(ctx context.Context) {
	go func() { _ = d.Load(ctx) }()
}

// Load fetches the dataset. Only the first call does any work; later and
// concurrent calls wait for it and return its outcome.
func (d *Directory) Load(ctx context.Context) error {
	d.once.Do(func() {
		defer close(d.done)
		d.load(ctx)
	})
	return d.Err()
}

func (d *Directory) load(ctx context.Context) {
	start := time.Now()
	d.log.Info("loading lodges", zap.String("source", d.source.Describe()))

	dataset, err := d.source.Fetch(ctx)
	metrics.LoadDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		d.mu.Lock()
		d.status, d.loadErr = StatusFailed, err
		d.mu.Unlock()

		metrics.LoadsTotal.WithLabelValues("failed").Inc()
		d.log.Error("failed to load lodges", zap.String("source", d.source.Describe()), zap.Error(err))
		d.emit(ctx, notify.LoadFailed())
		return
	}

	byNum := make(map[int]int, len(dataset))
	for i, l := range dataset {
		if _, dup := byNum[l.Numero]; dup {
			d.log.Warn("duplicate lodge numero, keeping the first", zap.Int("numero", l.Numero))
			continue
		}
		byNum[l.Numero] = i
	}

	d.mu.Lock()
	d.status = StatusReady
	d.memo = filter.NewMemo(dataset)
	d.byNum = byNum
	d.mu.Unlock()

	metrics.LoadsTotal.WithLabelValues("ok").Inc()
	metrics.DatasetRecords.Set(float64(len(dataset)))
	d.log.Info("lodges loaded", zap.Int("records", len(dataset)), zap.Duration("took", time.Since(start)))
}

func (d *Directory) emit(ctx context.Context, n notify.Notice) {
	metrics.NoticesTotal.WithLabelValues(string(n.Kind)).Inc()
	if err := d.notifier.Notify(ctx, n); err != nil {
		d.log.Warn("failed to deliver notice", zap.String("kind", string(n.Kind)), zap.Error(err))
	}
}

// Done is closed once the load has resolved, successfully or not.
func (d *Directory) Done() <-chan struct{} {
	return d.done
}

func (d *Directory) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

// Err is the load failure, if any.
func (d *Directory) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadErr
}

// Lookup finds a lodge by numero.
func (d *Directory) Lookup(numero int) (models.Logia, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.status != StatusReady {
		return models.Logia{}, ErrNotReady
	}
	i, ok := d.byNum[numero]
	if !ok {
		return models.Logia{}, fmt.Errorf("%w: %d", ErrNotFound, numero)
	}
	return d.memo.Dataset()[i], nil
}
