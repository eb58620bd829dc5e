package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mnicoli13/programmazione-web-2/components/base"
	"github.com/mnicoli13/programmazione-web-2/components/datatable"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
)

// ListPageProps configures one filterable table page.
type ListPageProps struct {
	Title    string
	Path     string
	Fields   []datatable.FilterField
	Result   *tables.Result
	State    datatable.State
	KeyField string
	// AddURL, when set, renders the add button next to the title.
	AddURL        string
	Flash         string
	Authenticated bool
	Username      string
}

// ListPage renders a fleet table page: flash, filter bar, active-filter
// summary and the table itself, or the empty state when nothing
// matches.
func ListPage(props ListPageProps) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := base.Flash("success", props.Flash).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`<div class="d-flex justify-content-between align-items-center mb-3"><h1 class="h3 mb-0">%s</h1>`,
			templ.EscapeString(props.Title),
		); err != nil {
			return err
		}
		if props.AddURL != "" {
			if _, err := fmt.Fprintf(w,
				`<a class="btn btn-primary" href="%s" id="add-btn"><i class="bi bi-plus-lg"></i> Aggiungi</a>`,
				templ.EscapeString(props.AddURL),
			); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if err := datatable.FilterForm(datatable.FilterFormProps{
			Action: props.Path,
			Fields: props.Fields,
			Values: props.State.Filters,
		}).Render(ctx, w); err != nil {
			return err
		}

		tableProps := datatable.TableProps{
			BasePath: props.Path,
			Columns:  props.Result.Columns,
			Rows:     props.Result.Rows,
			State:    props.State,
			KeyField: props.KeyField,
		}
		if err := datatable.FilterSummary(props.Fields, tableProps).Render(ctx, w); err != nil {
			return err
		}
		if len(props.Result.Rows) == 0 {
			return datatable.EmptyState("Nessun dato disponibile").Render(ctx, w)
		}
		return datatable.Table(tableProps).Render(ctx, w)
	})
	return base.Layout(base.LayoutProps{
		Title:         props.Title + " - Gestione Veicoli",
		ActivePath:    props.Path,
		Authenticated: props.Authenticated,
		Username:      props.Username,
	}, content)
}

// DashboardProps carries the counters shown on the dashboard.
type DashboardProps struct {
	Stats         *tables.Stats
	Authenticated bool
	Username      string
	Greeting      string
}

type statCard struct {
	Label string
	Value int
	Icon  string
	Class string
}

// Dashboard renders the counter cards of the home page.
func Dashboard(props DashboardProps) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<h1 class="h3 mb-4">%s, %s</h1><div class="row g-3">`,
			templ.EscapeString(props.Greeting),
			templ.EscapeString(props.Username),
		); err != nil {
			return err
		}
		cards := []statCard{
			{Label: "Veicoli", Value: props.Stats.TotalVeicoli, Icon: "bi-car-front", Class: "text-bg-primary"},
			{Label: "Targhe", Value: props.Stats.TotalTarghe, Icon: "bi-card-text", Class: "text-bg-secondary"},
			{Label: "Targhe attive", Value: props.Stats.TargheAttive, Icon: "bi-check-circle", Class: "text-bg-success"},
			{Label: "Targhe restituite", Value: props.Stats.TargheRestituite, Icon: "bi-arrow-return-left", Class: "text-bg-warning"},
			{Label: "Revisioni", Value: props.Stats.RevisioniTotali, Icon: "bi-clipboard-check", Class: "text-bg-info"},
			{Label: "Revisioni positive", Value: props.Stats.RevisioniPositive, Icon: "bi-hand-thumbs-up", Class: "text-bg-success"},
			{Label: "Revisioni negative", Value: props.Stats.RevisioniNegative, Icon: "bi-hand-thumbs-down", Class: "text-bg-danger"},
		}
		for _, card := range cards {
			if _, err := fmt.Fprintf(w,
				`<div class="col-sm-6 col-lg-3"><div class="card %s stat-card"><div class="card-body">`+
					`<div class="d-flex justify-content-between align-items-center">`+
					`<div><div class="fs-2 fw-bold">%d</div><div>%s</div></div>`+
					`<i class="bi %s fs-1"></i>`+
					`</div></div></div></div>`,
				card.Class,
				card.Value,
				templ.EscapeString(card.Label),
				card.Icon,
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
	return base.Layout(base.LayoutProps{
		Title:         "Dashboard - Gestione Veicoli",
		ActivePath:    "/dashboard",
		Authenticated: props.Authenticated,
		Username:      props.Username,
	}, content)
}

// VeicoloFormProps configures the add and edit form page.
type VeicoloFormProps struct {
	Title         string
	Action        string
	Veicolo       *veicolo.Veicolo
	Error         string
	Authenticated bool
	Username      string
}

// VeicoloForm renders the add or edit form for a vehicle.
func VeicoloForm(props VeicoloFormProps) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := base.Flash("danger", props.Error).Render(ctx, w); err != nil {
			return err
		}
		var telaio, marca, modello, dataProd string
		if props.Veicolo != nil {
			telaio = props.Veicolo.Telaio
			marca = props.Veicolo.Marca
			modello = props.Veicolo.Modello
			dataProd = props.Veicolo.DataProd.Format("2006-01-02")
		}
		_, err := fmt.Fprintf(w,
			`<div class="row justify-content-center"><div class="col-md-6">`+
				`<h1 class="h3 mb-4">%s</h1>`+
				`<form id="veicolo-form" method="post" action="%s">`+
				`<div class="mb-3"><label class="form-label" for="telaio">Numero Telaio</label>`+
				`<input type="text" class="form-control" id="telaio" name="telaio" value="%s" required></div>`+
				`<div class="mb-3"><label class="form-label" for="marca">Marca</label>`+
				`<input type="text" class="form-control" id="marca" name="marca" value="%s" required></div>`+
				`<div class="mb-3"><label class="form-label" for="modello">Modello</label>`+
				`<input type="text" class="form-control" id="modello" name="modello" value="%s" required></div>`+
				`<div class="mb-3"><label class="form-label" for="dataProd">Data Produzione</label>`+
				`<input type="date" class="form-control" id="dataProd" name="dataProd" value="%s" required></div>`+
				`<div class="d-flex gap-2">`+
				`<button type="submit" class="btn btn-primary">Salva</button>`+
				`<a class="btn btn-outline-secondary" href="/veicoli">Annulla</a>`+
				`</div></form></div></div>`,
			templ.EscapeString(props.Title),
			templ.EscapeString(props.Action),
			templ.EscapeString(telaio),
			templ.EscapeString(marca),
			templ.EscapeString(modello),
			templ.EscapeString(dataProd),
		)
		return err
	})
	return base.Layout(base.LayoutProps{
		Title:         props.Title + " - Gestione Veicoli",
		ActivePath:    "/veicoli",
		Authenticated: props.Authenticated,
		Username:      props.Username,
	}, content)
}

// VeicoloDetailProps configures the single-vehicle page.
type VeicoloDetailProps struct {
	Veicolo       *veicolo.Veicolo
	Authenticated bool
	Username      string
}

// VeicoloDetail renders one vehicle with its edit and delete actions.
func VeicoloDetail(props VeicoloDetailProps) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		v := props.Veicolo
		_, err := fmt.Fprintf(w,
			`<div class="row justify-content-center"><div class="col-md-6">`+
				`<h1 class="h3 mb-4">%s %s</h1>`+
				`<dl class="row">`+
				`<dt class="col-sm-4">Numero Telaio</dt><dd class="col-sm-8">%s</dd>`+
				`<dt class="col-sm-4">Marca</dt><dd class="col-sm-8">%s</dd>`+
				`<dt class="col-sm-4">Modello</dt><dd class="col-sm-8">%s</dd>`+
				`<dt class="col-sm-4">Data Produzione</dt><dd class="col-sm-8">%s</dd>`+
				`</dl>`+
				`<div class="d-flex gap-2">`+
				`<a class="btn btn-primary" href="/veicoli/%s/edit"><i class="bi bi-pencil"></i> Modifica</a>`+
				`<form method="post" action="/veicoli/%s/delete">`+
				`<button type="submit" class="btn btn-danger"><i class="bi bi-trash"></i> Elimina</button></form>`+
				`<a class="btn btn-outline-secondary" href="/veicoli">Indietro</a>`+
				`</div></div></div>`,
			templ.EscapeString(v.Marca),
			templ.EscapeString(v.Modello),
			templ.EscapeString(v.Telaio),
			templ.EscapeString(v.Marca),
			templ.EscapeString(v.Modello),
			datatable.FormatDate(v.DataProd.Format("2006-01-02")),
			templ.EscapeString(v.Telaio),
			templ.EscapeString(v.Telaio),
		)
		return err
	})
	return base.Layout(base.LayoutProps{
		Title:         "Dettaglio veicolo - Gestione Veicoli",
		ActivePath:    "/veicoli",
		Authenticated: props.Authenticated,
		Username:      props.Username,
	}, content)
}
