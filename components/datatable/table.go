package datatable

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// TableProps configures a rendered table.
type TableProps struct {
	// ID of the <table> element, "data-table" when empty.
	ID string
	// BasePath is the page path header sort links point at.
	BasePath string
	Columns  []Column
	Rows     []Row
	State    State
	// KeyField, when set, adds an action column whose edit and delete
	// buttons carry the row's key in data-id.
	KeyField string
}

func (p TableProps) id() string {
	if p.ID == "" {
		return "data-table"
	}
	return p.ID
}

// Table renders the full table: sortable headers with direction
// indicators and one row per record.
func Table(props TableProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div class="table-responsive"><table id="%s" class="table table-striped align-middle">`,
			templ.EscapeString(props.id()),
		); err != nil {
			return err
		}
		if err := renderHead(w, props); err != nil {
			return err
		}
		if err := renderBody(w, props); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</table></div>`)
		return err
	})
}

func renderHead(w io.Writer, props TableProps) error {
	if _, err := io.WriteString(w, `<thead><tr>`); err != nil {
		return err
	}
	for _, col := range props.Columns {
		icon := props.State.Sort.Indicator(col.Name)
		href := props.State.SortURL(props.BasePath, col.Name)
		if _, err := fmt.Fprintf(w,
			`<th class="sortable" data-column="%s"><a class="sort-link text-decoration-none" href="%s">%s <i class="bi %s"></i></a></th>`,
			templ.EscapeString(col.Name),
			templ.EscapeString(href),
			templ.EscapeString(col.Label),
			templ.EscapeString(icon),
		); err != nil {
			return err
		}
	}
	if props.KeyField != "" {
		if _, err := io.WriteString(w, `<th class="actions-column">Azioni</th>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tr></thead>`)
	return err
}

func renderBody(w io.Writer, props TableProps) error {
	if _, err := io.WriteString(w, `<tbody>`); err != nil {
		return err
	}
	for _, row := range props.Rows {
		if _, err := io.WriteString(w, `<tr>`); err != nil {
			return err
		}
		for _, col := range props.Columns {
			if err := renderCell(w, col, row); err != nil {
				return err
			}
		}
		if props.KeyField != "" {
			key := RawValue(Column{Name: props.KeyField}, row)
			if err := renderActions(w, key); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tr>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody>`)
	return err
}

func renderCell(w io.Writer, col Column, row Row) error {
	text := CellText(col, row)
	switch {
	case col.Type == StatusColumn:
		badge := StatusBadge(text)
		_, err := fmt.Fprintf(w,
			`<td><span class="badge %s"><i class="bi %s"></i> %s</span></td>`,
			badge.Class,
			badge.Icon,
			templ.EscapeString(text),
		)
		return err
	case col.IsLink && text != "":
		_, err := fmt.Fprintf(w,
			`<td><a class="table-link" href="/%s" data-target="%s" data-value="%s">%s</a></td>`,
			templ.EscapeString(col.LinkTarget),
			templ.EscapeString(col.LinkTarget),
			templ.EscapeString(RawValue(col, row)),
			templ.EscapeString(text),
		)
		return err
	default:
		_, err := fmt.Fprintf(w, `<td>%s</td>`, templ.EscapeString(text))
		return err
	}
}

func renderActions(w io.Writer, key string) error {
	_, err := fmt.Fprintf(w,
		`<td class="text-nowrap">`+
			`<button type="button" class="btn btn-sm btn-primary edit-btn me-1" data-id="%s"><i class="bi bi-pencil"></i></button>`+
			`<button type="button" class="btn btn-sm btn-danger delete-btn" data-id="%s"><i class="bi bi-trash"></i></button>`+
			`</td>`,
		templ.EscapeString(key),
		templ.EscapeString(key),
	)
	return err
}

// EmptyState renders the placeholder shown when a table has no rows.
func EmptyState(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="alert alert-info empty-state"><i class="bi bi-info-circle"></i> %s</div>`,
			templ.EscapeString(message),
		)
		return err
	})
}

// FilterSummary renders the line describing the active filters, empty
// output when no filter is active.
func FilterSummary(fields []FilterField, props TableProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		summary := Summary(fields, props.State.Filters)
		if summary == "" {
			return nil
		}
		_, err := fmt.Fprintf(w,
			`<div class="filter-summary text-muted"><i class="bi bi-funnel-fill"></i> %s</div>`,
			templ.EscapeString(summary),
		)
		return err
	})
}
