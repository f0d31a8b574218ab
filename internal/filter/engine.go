package filter

import (
	"slices"
	"strings"

	"logias/internal/models"
)

// Dimensions holds the distinct values of each filterable field, sorted
// ascending. They populate the options of the three selects.
type Dimensions struct {
	Ciudades       []string `json:"ciudades"`
	Jurisdicciones []string `json:"jurisdicciones"`
	Dias           []string `json:"dias"`
}

// Views is everything the presentation layer renders for one state.
type Views struct {
	Dimensions Dimensions     `json:"dimensiones"`
	Results    []models.Logia `json:"logias"`
	Total      int            `json:"total"`
	Shown      int            `json:"mostrando"`
}

// DeriveDimensions collects the distinct ciudad, jurisdiccion and dias
// values of the dataset. An empty dataset yields empty (non-nil) sets.
func DeriveDimensions(dataset []models.Logia) Dimensions {
	return Dimensions{
		Ciudades:       distinct(dataset, func(l models.Logia) string { return l.Ciudad }),
		Jurisdicciones: distinct(dataset, func(l models.Logia) string { return l.Jurisdiccion }),
		Dias:           distinct(dataset, func(l models.Logia) string { return l.Dias }),
	}
}

func distinct(dataset []models.Logia, field func(models.Logia) string) []string {
	seen := make(map[string]struct{}, len(dataset))
	out := make([]string, 0, len(dataset))
	for _, l := range dataset {
		v := field(l)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Match reports whether l satisfies every leg of c.
//
// The free-text leg is a case-insensitive substring test over the decimal
// numero, nombre, direccion and ciudad only. The dimension legs compare
// exactly, unless the leg is All.
func Match(l models.Logia, c Criteria) bool {
	return matchesText(l, c.Query) &&
		matchesExact(l.Ciudad, c.Ciudad) &&
		matchesExact(l.Jurisdiccion, c.Jurisdiccion) &&
		matchesExact(l.Dias, c.Dia)
}

func matchesText(l models.Logia, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(l.NumeroString(), q) ||
		strings.Contains(strings.ToLower(l.Nombre), q) ||
		strings.Contains(strings.ToLower(l.Direccion), q) ||
		strings.Contains(strings.ToLower(l.Ciudad), q)
}

func matchesExact(value, selected string) bool {
	return selected == All || value == selected
}

// Filter returns the records of dataset matching c, in dataset order.
func Filter(dataset []models.Logia, c Criteria) []models.Logia {
	out := make([]models.Logia, 0, len(dataset))
	for _, l := range dataset {
		if Match(l, c) {
			out = append(out, l)
		}
	}
	return out
}

// ComputeViews derives the dimension sets and the filtered results of
// dataset under c.
func ComputeViews(dataset []models.Logia, c Criteria) Views {
	return viewsWith(DeriveDimensions(dataset), dataset, c)
}

func viewsWith(dims Dimensions, dataset []models.Logia, c Criteria) Views {
	results := Filter(dataset, c)
	return Views{
		Dimensions: dims,
		Results:    results,
		Total:      len(dataset),
		Shown:      len(results),
	}
}
