package session

import (
	"logias/internal/filter"
	"logias/internal/metrics"
)

// State is what the presentation layer should show. Each state has its own
// message.
type State string

const (
	StateLoading State = "cargando"
	StateFailed  State = "error"
	// StateEmpty means the load succeeded with zero records.
	StateEmpty State = "sin_datos"
	// StateNoMatch means records exist but the criteria match none of them.
	StateNoMatch State = "sin_resultados"
	StateResults State = "resultados"
)

// View is the state of the session for one set of criteria.
type View struct {
	State    State           `json:"estado"`
	Criteria filter.Criteria `json:"criterios"`
	filter.Views
}

// View derives the dimension sets and results for c. Filters are never
// applied before the load resolves.
func (d *Directory) View(c filter.Criteria) View {
	d.mu.RLock()
	status, memo := d.status, d.memo
	d.mu.RUnlock()

	v := View{Criteria: c}
	switch status {
	case StatusLoading:
		v.State = StateLoading
		v.Views = emptyViews()
	case StatusFailed:
		v.State = StateFailed
		v.Views = emptyViews()
	default:
		v.Views = memo.Views(c)
		switch {
		case v.Total == 0:
			v.State = StateEmpty
		case v.Shown == 0:
			v.State = StateNoMatch
		default:
			v.State = StateResults
		}
	}

	metrics.ViewsTotal.WithLabelValues(string(v.State)).Inc()
	return v
}

// Dimensions returns the dimension sets of the loaded dataset; they are
// empty until the load succeeds.
func (d *Directory) Dimensions() filter.Dimensions {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.memo.Dimensions()
}

func emptyViews() filter.Views {
	return filter.ComputeViews(nil, filter.DefaultCriteria())
}
