package filter

import (
	"sync"

	"logias/internal/models"
)

// Memo binds a dataset that is never written again and memoizes its views.
// Dimensions are derived once; the views of the most recent criteria are
// kept. Returned slices are shared and must be treated as read-only.
type Memo struct {
	dataset []models.Logia
	dims    Dimensions

	mu    sync.Mutex
	last  Criteria
	views *Views
}

// NewMemo derives the dimension sets of dataset up front.
func NewMemo(dataset []models.Logia) *Memo {
	return &Memo{dataset: dataset, dims: DeriveDimensions(dataset)}
}

// Dataset returns the bound dataset.
func (m *Memo) Dataset() []models.Logia {
	return m.dataset
}

// Dimensions returns the dimension sets of the bound dataset.
func (m *Memo) Dimensions() Dimensions {
	return m.dims
}

// Views is ComputeViews over the bound dataset.
func (m *Memo) Views(c Criteria) Views {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.views != nil && m.last == c {
		return *m.views
	}
	v := viewsWith(m.dims, m.dataset, c)
	m.last, m.views = c, &v
	return v
}
