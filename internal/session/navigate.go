package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"logias/internal/metrics"
	"logias/internal/models"
	"logias/internal/notify"
)

// Navigator opens a URL in a new browsing context. What happens to that
// context afterwards is not the session's concern.
type Navigator interface {
	Open(ctx context.Context, url string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, url string) error

func (f NavigatorFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// OpenMap opens the map location of the lodge with the given numero and
// confirms it with a navigation notice carrying the lodge's name.
func (d *Directory) OpenMap(ctx context.Context, nav Navigator, numero int) (models.Logia, error) {
	l, err := d.Lookup(numero)
	if err != nil {
		return models.Logia{}, err
	}
	if err := nav.Open(ctx, l.URLMaps); err != nil {
		return l, fmt.Errorf("open map of lodge %d: %w", numero, err)
	}

	metrics.NavigationsTotal.Inc()
	d.log.Debug("opened lodge map", zap.Int("numero", l.Numero), zap.String("url", l.URLMaps))
	d.emit(ctx, notify.Navigation(l.Nombre))
	return l, nil
}
