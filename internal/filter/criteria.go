// Package filter derives the selectable dimension sets of a lodge dataset
// and the subset of records matching a set of criteria. Everything here is
// pure and synchronous; callers own the dataset and the criteria.
package filter

import (
	"net/url"
	"strings"
)

// All is the selection value meaning "do not filter on this dimension".
const All = ""

// Aliases of All accepted from query strings; they are the labels the
// selects were historically submitted with.
var allAliases = map[string]struct{}{
	"todas": {},
	"todos": {},
}

// Criteria is the active filter. The zero value matches every record.
type Criteria struct {
	Query        string `json:"q"`
	Ciudad       string `json:"ciudad"`
	Jurisdiccion string `json:"jurisdiccion"`
	Dia          string `json:"dia"`
}

// DefaultCriteria returns criteria with every leg cleared.
func DefaultCriteria() Criteria {
	return Criteria{Query: "", Ciudad: All, Jurisdiccion: All, Dia: All}
}

// Reset clears all four criteria at once. Calling it on default criteria
// leaves them unchanged.
func (c *Criteria) Reset() {
	*c = DefaultCriteria()
}

// IsDefault reports whether no leg of c filters anything.
func (c Criteria) IsDefault() bool {
	return c == DefaultCriteria()
}

// Values encodes c as query parameters, omitting default legs.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if c.Query != "" {
		v.Set("q", c.Query)
	}
	if c.Ciudad != All {
		v.Set("ciudad", c.Ciudad)
	}
	if c.Jurisdiccion != All {
		v.Set("jurisdiccion", c.Jurisdiccion)
	}
	if c.Dia != All {
		v.Set("dia", c.Dia)
	}
	return v
}

// ParseCriteria reads criteria from query parameters q, ciudad,
// jurisdiccion and dia. Missing parameters and the "todas"/"todos" labels
// select All. The query text is kept verbatim.
func ParseCriteria(v url.Values) Criteria {
	return Criteria{
		Query:        v.Get("q"),
		Ciudad:       selection(v.Get("ciudad")),
		Jurisdiccion: selection(v.Get("jurisdiccion")),
		Dia:          selection(v.Get("dia")),
	}
}

func selection(s string) string {
	if _, ok := allAliases[strings.ToLower(s)]; ok {
		return All
	}
	return s
}
