package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/middleware"
)

// TableController serves the generic table API used by every list page.
type TableController struct {
	app          application.Application
	tableService *services.TableService
	basePath     string
}

func NewTableController(app application.Application) application.Controller {
	return &TableController{
		app:          app,
		tableService: app.Service(services.TableService{}).(*services.TableService),
		basePath:     "/api/table",
	}
}

func (c *TableController) Key() string {
	return c.basePath
}

func (c *TableController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireAuthenticated())
	router.HandleFunc("", c.table).Methods(http.MethodGet)

	// Targhe list alias kept for the legacy client.
	targhe := r.PathPrefix("/api/targhe").Subrouter()
	targhe.Use(middleware.RequireAuthenticated())
	targhe.HandleFunc("", c.targhe).Methods(http.MethodGet)
}

func (c *TableController) table(w http.ResponseWriter, r *http.Request) {
	c.fetch(w, r, r.URL.Query().Get("table"))
}

func (c *TableController) targhe(w http.ResponseWriter, r *http.Request) {
	c.fetch(w, r, tables.Targa)
}

func (c *TableController) fetch(w http.ResponseWriter, r *http.Request, table string) {
	query := r.URL.Query()
	result, err := c.tableService.Fetch(
		r.Context(),
		table,
		query,
		query.Get("sort"),
		strings.ToLower(query.Get("order")),
	)
	if err != nil {
		if errors.Is(err, tables.ErrUnknownTable) {
			writeError(w, http.StatusBadRequest, "Tabella non valida")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("table fetch failed")
		writeError(w, http.StatusInternalServerError, "Errore del server")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"data":    result.Rows,
		"columns": result.Columns,
	})
}
