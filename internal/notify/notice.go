// Package notify carries the user-facing notices the directory emits: a
// load failure and a successful navigation to a lodge's map. It decides
// nothing about presentation; sinks only deliver.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind distinguishes the two notice categories.
type Kind string

const (
	KindLoadFailed Kind = "load_failed"
	KindNavigation Kind = "navigation"
)

// Notice is one emitted notification.
type Notice struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Lodge   string    `json:"lodge,omitempty"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// LoadFailed builds the notice emitted when the dataset could not be loaded.
func LoadFailed() Notice {
	return Notice{
		ID:      uuid.NewString(),
		Kind:    KindLoadFailed,
		Message: "Error al cargar los datos de las logias",
		At:      time.Now().UTC(),
	}
}

// Navigation builds the notice emitted after opening a lodge's map location.
func Navigation(nombre string) Notice {
	return Notice{
		ID:      uuid.NewString(),
		Kind:    KindNavigation,
		Lodge:   nombre,
		Message: fmt.Sprintf("Abriendo ubicación de %s en Google Maps", nombre),
		At:      time.Now().UTC(),
	}
}

// Notifier delivers notices. Implementations must not block on slow
// downstreams.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// LogNotifier writes notices to a zap logger.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n Notice) error {
	fields := []zap.Field{
		zap.String("notice_id", n.ID),
		zap.String("kind", string(n.Kind)),
	}
	if n.Lodge != "" {
		fields = append(fields, zap.String("lodge", n.Lodge))
	}
	switch n.Kind {
	case KindLoadFailed:
		l.log.Error(n.Message, fields...)
	default:
		l.log.Info(n.Message, fields...)
	}
	return nil
}

// Recorder keeps the most recent notices in memory, newest last.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	notices []Notice
}

// NewRecorder keeps at most limit notices; limit <= 0 keeps all.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(_ context.Context, n Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	if r.limit > 0 && len(r.notices) > r.limit {
		r.notices = r.notices[len(r.notices)-r.limit:]
	}
	return nil
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Count returns how many recorded notices are of kind k.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, notice := range r.notices {
		if notice.Kind == k {
			n++
		}
	}
	return n
}

// Multi fans a notice out to every sink and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notice) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
