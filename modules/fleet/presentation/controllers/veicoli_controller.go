package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/presentation/controllers/dtos"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/middleware"
	"github.com/mnicoli13/programmazione-web-2/pkg/shared"
)

// VeicoliController is the vehicle CRUD API.
type VeicoliController struct {
	app            application.Application
	veicoloService *services.VeicoloService
	tableService   *services.TableService
	basePath       string
}

func NewVeicoliController(app application.Application) application.Controller {
	return &VeicoliController{
		app:            app,
		veicoloService: app.Service(services.VeicoloService{}).(*services.VeicoloService),
		tableService:   app.Service(services.TableService{}).(*services.TableService),
		basePath:       "/api/veicoli",
	}
}

func (c *VeicoliController) Key() string {
	return c.basePath
}

func (c *VeicoliController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireAuthenticated())
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("/add", c.create).Methods(http.MethodPost)
	router.HandleFunc("/{telaio}/detail", c.detail).Methods(http.MethodGet)
	router.HandleFunc("/{telaio}/update", c.update).Methods(http.MethodPost)
	router.HandleFunc("/{telaio}/delete", c.delete).Methods(http.MethodPost)
}

func (c *VeicoliController) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := c.tableService.Fetch(
		r.Context(),
		tables.Veicolo,
		query,
		query.Get("sort"),
		strings.ToLower(query.Get("order")),
	)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("veicoli list failed")
		writeError(w, http.StatusInternalServerError, "Errore del server")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"data":    result.Rows,
		"columns": result.Columns,
	})
}

func (c *VeicoliController) detail(w http.ResponseWriter, r *http.Request) {
	v, err := c.veicoloService.Get(r.Context(), shared.PathParam(r, "telaio"))
	if err != nil {
		if errors.Is(err, veicolo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Veicolo non trovato")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("veicolo detail failed")
		writeError(w, http.StatusInternalServerError, "Errore del server")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": map[string]any{
			"telaio":   v.Telaio,
			"marca":    v.Marca,
			"modello":  v.Modello,
			"dataProd": v.DataProd.Format("2006-01-02"),
		},
	})
}

func (c *VeicoliController) create(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseMultipartForm(&dtos.CreateVeicoloDTO{}, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Dati non validi")
		return
	}
	if msg, ok := dto.Ok(r.Context()); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	entity, err := dto.ToEntity()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Formato data non valido (YYYY-MM-DD)")
		return
	}
	if err := c.veicoloService.Create(r.Context(), entity); err != nil {
		if errors.Is(err, veicolo.ErrTelaioExists) {
			writeError(w, http.StatusBadRequest, "Numero di telaio già esistente")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("veicolo create failed")
		writeError(w, http.StatusInternalServerError, "Errore del server")
		return
	}
	writeSuccess(w, "Veicolo aggiunto con successo")
}

func (c *VeicoliController) update(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseMultipartForm(&dtos.UpdateVeicoloDTO{}, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Dati non validi")
		return
	}
	if msg, ok := dto.Ok(r.Context()); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := c.veicoloService.Update(r.Context(), shared.PathParam(r, "telaio"), dto.ToUpdate()); err != nil {
		switch {
		case errors.Is(err, veicolo.ErrNotFound):
			writeError(w, http.StatusNotFound, "Veicolo non trovato")
		case errors.Is(err, veicolo.ErrTelaioExists):
			writeError(w, http.StatusBadRequest, "Numero di telaio già esistente")
		case errors.Is(err, services.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "Formato data non valido (YYYY-MM-DD)")
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("veicolo update failed")
			writeError(w, http.StatusInternalServerError, "Errore del server")
		}
		return
	}
	writeSuccess(w, "Veicolo aggiornato con successo")
}

func (c *VeicoliController) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.veicoloService.Delete(r.Context(), shared.PathParam(r, "telaio")); err != nil {
		if errors.Is(err, veicolo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Veicolo non trovato")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("veicolo delete failed")
		writeError(w, http.StatusInternalServerError, "Errore del server")
		return
	}
	writeSuccess(w, "Veicolo eliminato con successo")
}
