package controllers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/components/datatable"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/presentation/controllers/dtos"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/presentation/templates"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/presentation/viewmodels"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/intl"
	"github.com/mnicoli13/programmazione-web-2/pkg/middleware"
	"github.com/mnicoli13/programmazione-web-2/pkg/shared"
)

// listPage binds a URL path to a logical table.
type listPage struct {
	path     string
	table    string
	title    string
	keyField string
	addURL   string
}

var listPages = []listPage{
	{path: "/veicoli", table: tables.Veicolo, title: "Veicoli", keyField: "telaio", addURL: "/veicoli/add"},
	{path: "/targhe", table: tables.Targa, title: "Targhe"},
	{path: "/targhe-attive", table: tables.TargaAttiva, title: "Targhe attive"},
	{path: "/targhe-restituite", table: tables.TargaRestituita, title: "Targhe restituite"},
	{path: "/revisioni", table: tables.Revisione, title: "Revisioni"},
}

// PagesController serves the server-rendered pages of the fleet.
type PagesController struct {
	app            application.Application
	tableService   *services.TableService
	veicoloService *services.VeicoloService
}

func NewPagesController(app application.Application) application.Controller {
	return &PagesController{
		app:            app,
		tableService:   app.Service(services.TableService{}).(*services.TableService),
		veicoloService: app.Service(services.VeicoloService{}).(*services.VeicoloService),
	}
}

func (c *PagesController) Key() string {
	return "/dashboard"
}

func (c *PagesController) Register(r *mux.Router) {
	router := r.NewRoute().Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())
	router.HandleFunc("/", c.dashboard).Methods(http.MethodGet)
	router.HandleFunc("/dashboard", c.dashboard).Methods(http.MethodGet)
	for _, page := range listPages {
		router.HandleFunc(page.path, c.listHandler(page)).Methods(http.MethodGet)
	}
	router.HandleFunc("/veicoli/add", c.addForm).Methods(http.MethodGet)
	router.HandleFunc("/veicoli/add", c.add).Methods(http.MethodPost)
	router.HandleFunc("/veicoli/{telaio}", c.detail).Methods(http.MethodGet)
	router.HandleFunc("/veicoli/{telaio}/edit", c.editForm).Methods(http.MethodGet)
	router.HandleFunc("/veicoli/{telaio}/edit", c.edit).Methods(http.MethodPost)
	router.HandleFunc("/veicoli/{telaio}/delete", c.delete).Methods(http.MethodPost)
}

func (c *PagesController) render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	if err := component.Render(r.Context(), w); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func username(r *http.Request) string {
	if u, err := composables.UseUser(r.Context()); err == nil {
		return u.Username
	}
	return ""
}

func (c *PagesController) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.tableService.Stats(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to load dashboard")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	c.render(w, r, templates.Dashboard(templates.DashboardProps{
		Stats:         stats,
		Authenticated: true,
		Username:      username(r),
		Greeting:      intl.T(r.Context(), "Dashboard.Greeting", "Benvenuto"),
	}))
}

func (c *PagesController) listHandler(page listPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		fields := viewmodels.FilterFields(page.table)
		filters := datatable.ParseFilters(fields, query)

		var sort *datatable.Sort
		if field := query.Get("sort"); field != "" {
			order := datatable.Asc
			if strings.ToLower(query.Get("order")) == "desc" {
				order = datatable.Desc
			}
			sort = &datatable.Sort{Field: field, Order: order}
		}

		result, err := c.tableService.Fetch(r.Context(), page.table, query, query.Get("sort"), strings.ToLower(query.Get("order")))
		if err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("failed to load list page")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		props := templates.ListPageProps{
			Title:         page.title,
			Path:          page.path,
			Fields:        fields,
			Result:        result,
			State:         datatable.State{Table: page.table, Filters: filters, Sort: sort},
			KeyField:      page.keyField,
			AddURL:        page.addURL,
			Authenticated: true,
			Username:      username(r),
		}
		if flash, err := composables.UseFlash(w, r, "flash"); err == nil && len(flash) > 0 {
			props.Flash = string(flash)
		}
		c.render(w, r, templates.ListPage(props))
	}
}

func (c *PagesController) addForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, templates.VeicoloForm(templates.VeicoloFormProps{
		Title:         "Aggiungi veicolo",
		Action:        "/veicoli/add",
		Authenticated: true,
		Username:      username(r),
	}))
}

func (c *PagesController) add(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.CreateVeicoloDTO{}, r)
	if err != nil {
		c.renderAddError(w, r, "Dati non validi")
		return
	}
	if msg, ok := dto.Ok(r.Context()); !ok {
		c.renderAddError(w, r, msg)
		return
	}
	entity, err := dto.ToEntity()
	if err != nil {
		c.renderAddError(w, r, "Formato data non valido (YYYY-MM-DD)")
		return
	}
	if err := c.veicoloService.Create(r.Context(), entity); err != nil {
		if errors.Is(err, veicolo.ErrTelaioExists) {
			c.renderAddError(w, r, "Numero di telaio già esistente")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("veicolo create failed")
		c.renderAddError(w, r, "Errore del server")
		return
	}
	shared.SetFlash(w, "flash", []byte("Veicolo aggiunto con successo!"))
	shared.Redirect(w, r, "/veicoli")
}

func (c *PagesController) renderAddError(w http.ResponseWriter, r *http.Request, msg string) {
	c.render(w, r, templates.VeicoloForm(templates.VeicoloFormProps{
		Title:         "Aggiungi veicolo",
		Action:        "/veicoli/add",
		Error:         msg,
		Authenticated: true,
		Username:      username(r),
	}))
}

func (c *PagesController) detail(w http.ResponseWriter, r *http.Request) {
	v, err := c.veicoloService.Get(r.Context(), shared.PathParam(r, "telaio"))
	if err != nil {
		if errors.Is(err, veicolo.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("veicolo detail failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	c.render(w, r, templates.VeicoloDetail(templates.VeicoloDetailProps{
		Veicolo:       v,
		Authenticated: true,
		Username:      username(r),
	}))
}

func (c *PagesController) editForm(w http.ResponseWriter, r *http.Request) {
	telaio := shared.PathParam(r, "telaio")
	v, err := c.veicoloService.Get(r.Context(), telaio)
	if err != nil {
		if errors.Is(err, veicolo.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("veicolo edit form failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	c.render(w, r, templates.VeicoloForm(templates.VeicoloFormProps{
		Title:         "Modifica veicolo",
		Action:        "/veicoli/" + telaio + "/edit",
		Veicolo:       v,
		Authenticated: true,
		Username:      username(r),
	}))
}

func (c *PagesController) edit(w http.ResponseWriter, r *http.Request) {
	telaio := shared.PathParam(r, "telaio")
	renderError := func(msg string) {
		v, getErr := c.veicoloService.Get(r.Context(), telaio)
		if getErr != nil {
			http.NotFound(w, r)
			return
		}
		c.render(w, r, templates.VeicoloForm(templates.VeicoloFormProps{
			Title:         "Modifica veicolo",
			Action:        "/veicoli/" + telaio + "/edit",
			Veicolo:       v,
			Error:         msg,
			Authenticated: true,
			Username:      username(r),
		}))
	}

	dto, err := composables.UseForm(&dtos.UpdateVeicoloDTO{}, r)
	if err != nil {
		renderError("Dati non validi")
		return
	}
	if msg, ok := dto.Ok(r.Context()); !ok {
		renderError(msg)
		return
	}
	if _, err := c.veicoloService.Update(r.Context(), telaio, dto.ToUpdate()); err != nil {
		switch {
		case errors.Is(err, veicolo.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, veicolo.ErrTelaioExists):
			renderError("Numero di telaio già esistente")
		case errors.Is(err, services.ErrInvalidDate):
			renderError("Formato data non valido (YYYY-MM-DD)")
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("veicolo update failed")
			renderError("Errore del server")
		}
		return
	}
	shared.SetFlash(w, "flash", []byte("Veicolo modificato con successo!"))
	shared.Redirect(w, r, "/veicoli")
}

func (c *PagesController) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.veicoloService.Delete(r.Context(), shared.PathParam(r, "telaio")); err != nil {
		if errors.Is(err, veicolo.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("veicolo delete failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	shared.SetFlash(w, "flash", []byte("Veicolo eliminato con successo!"))
	shared.Redirect(w, r, "/veicoli")
}
