package datatable

import (
	"net/url"
	"strings"
)

// FilterType selects the input widget rendered for a filter field.
type FilterType string

const (
	TextFilter   FilterType = "text"
	DateFilter   FilterType = "date"
	SelectFilter FilterType = "select"
)

// FilterOption is one entry of a select filter.
type FilterOption struct {
	Value string
	Label string
}

// FilterField describes one filterable column of a table.
type FilterField struct {
	Name        string
	Label       string
	Placeholder string
	Type        FilterType
	Icon        string
	Options     []FilterOption
}

// ParseFilters extracts the non-empty filter values for the given fields
// from a raw query, dropping everything else (table, sort, order,
// unknown keys).
func ParseFilters(fields []FilterField, query url.Values) url.Values {
	filters := url.Values{}
	for _, f := range fields {
		if v := strings.TrimSpace(query.Get(f.Name)); v != "" {
			filters.Set(f.Name, v)
		}
	}
	return filters
}

// Summary renders the active filters as a human-readable list, one
// "Label: value" pair per active field in declaration order.
func Summary(fields []FilterField, filters url.Values) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := filters.Get(f.Name); v != "" {
			label := v
			if f.Type == SelectFilter {
				for _, opt := range f.Options {
					if opt.Value == v {
						label = opt.Label
						break
					}
				}
			}
			parts = append(parts, f.Label+": "+label)
		}
	}
	return strings.Join(parts, ", ")
}
