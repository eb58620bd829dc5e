package datatable

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// FilterFormProps configures the filter bar rendered above a table.
type FilterFormProps struct {
	// Action is the page path the form submits to with GET.
	Action string
	Fields []FilterField
	Values url.Values
}

// FilterForm renders one input per filter field plus apply and reset
// controls. Submitting with GET keeps the filters bookmarkable.
func FilterForm(props FilterFormProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<form id="filter-form" class="row g-2 align-items-end mb-3" method="get" action="%s">`,
			templ.EscapeString(props.Action),
		); err != nil {
			return err
		}
		for _, f := range props.Fields {
			if err := renderFilterField(w, f, props.Values.Get(f.Name)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w,
			`<div class="col-auto">`+
				`<button type="submit" class="btn btn-primary"><i class="bi bi-funnel"></i> Filtra</button> `+
				`<a class="btn btn-outline-secondary reset-filters" href="%s">Azzera</a>`+
				`</div>`,
			templ.EscapeString(props.Action),
		); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</form>`)
		return err
	})
}

func renderFilterField(w io.Writer, f FilterField, value string) error {
	icon := ""
	if f.Icon != "" {
		icon = fmt.Sprintf(`<i class="bi %s"></i> `, templ.EscapeString(f.Icon))
	}
	if _, err := fmt.Fprintf(w,
		`<div class="col-md-3"><label class="form-label" for="filter-%s">%s%s</label>`,
		templ.EscapeString(f.Name),
		icon,
		templ.EscapeString(f.Label),
	); err != nil {
		return err
	}
	switch f.Type {
	case SelectFilter:
		if _, err := fmt.Fprintf(w,
			`<select id="filter-%s" name="%s" class="form-select">`,
			templ.EscapeString(f.Name),
			templ.EscapeString(f.Name),
		); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<option value="">Tutti</option>`); err != nil {
			return err
		}
		for _, opt := range f.Options {
			selected := ""
			if opt.Value == value && value != "" {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w,
				`<option value="%s"%s>%s</option>`,
				templ.EscapeString(opt.Value),
				selected,
				templ.EscapeString(opt.Label),
			); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select>`); err != nil {
			return err
		}
	case DateFilter:
		if _, err := fmt.Fprintf(w,
			`<input id="filter-%s" type="date" name="%s" class="form-control" value="%s">`,
			templ.EscapeString(f.Name),
			templ.EscapeString(f.Name),
			templ.EscapeString(value),
		); err != nil {
			return err
		}
	default:
		if _, err := fmt.Fprintf(w,
			`<input id="filter-%s" type="text" name="%s" class="form-control" placeholder="%s" value="%s">`,
			templ.EscapeString(f.Name),
			templ.EscapeString(f.Name),
			templ.EscapeString(f.Placeholder),
			templ.EscapeString(value),
		); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}
