package datatable

import "net/url"

// SortOrder is either "asc" or "desc".
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Sort is the current ordering of a table.
type Sort struct {
	Field string
	Order SortOrder
}

// Toggle computes the ordering a click on the given header produces:
// clicking the active column flips its direction, clicking any other
// column starts ascending.
func (s *Sort) Toggle(field string) Sort {
	if s != nil && s.Field == field && s.Order == Asc {
		return Sort{Field: field, Order: Desc}
	}
	return Sort{Field: field, Order: Asc}
}

// Indicator returns the Bootstrap icon class for a header: a directional
// arrow on the active column, the neutral glyph everywhere else.
func (s *Sort) Indicator(field string) string {
	if s != nil && s.Field == field {
		if s.Order == Desc {
			return "bi-arrow-down"
		}
		return "bi-arrow-up"
	}
	return "bi-arrow-down-up"
}

// State is the full query state of a rendered table: which table, the
// active filters and the active ordering. Filters hold only non-empty
// filter pairs, never sort or order keys.
type State struct {
	Table   string
	Filters url.Values
	Sort    *Sort
}

// Query encodes the state as table API query parameters.
func (st State) Query() url.Values {
	q := url.Values{}
	if st.Table != "" {
		q.Set("table", st.Table)
	}
	for k, vs := range st.Filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if st.Sort != nil {
		q.Set("sort", st.Sort.Field)
		q.Set("order", string(st.Sort.Order))
	}
	return q
}

// SortURL builds the URL a header click navigates to, preserving the
// active filters and toggling the ordering for the given column.
func (st State) SortURL(base, field string) string {
	next := st.Sort.Toggle(field)
	q := url.Values{}
	for k, vs := range st.Filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("sort", next.Field)
	q.Set("order", string(next.Order))
	return base + "?" + q.Encode()
}
