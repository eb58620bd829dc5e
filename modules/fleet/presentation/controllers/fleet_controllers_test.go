package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnicoli13/programmazione-web-2/components/datatable"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/veicolo"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/presentation/controllers"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/eventbus"
)

type fakeTableRepo struct {
	rows    []datatable.Row
	lastQry tables.Query
}

func (f *fakeTableRepo) Fetch(_ context.Context, q tables.Query) (*tables.Result, error) {
	def, ok := tables.Get(q.Table)
	if !ok {
		return nil, tables.ErrUnknownTable
	}
	f.lastQry = q
	return &tables.Result{Rows: f.rows, Columns: def.Columns}, nil
}

type fakeStatsRepo struct {
	stats tables.Stats
}

func (f *fakeStatsRepo) Stats(_ context.Context) (*tables.Stats, error) {
	s := f.stats
	return &s, nil
}

type memVeicoloRepo struct {
	veicoli map[string]*veicolo.Veicolo
}

func (f *memVeicoloRepo) GetByTelaio(_ context.Context, telaio string) (*veicolo.Veicolo, error) {
	v, ok := f.veicoli[telaio]
	if !ok {
		return nil, veicolo.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *memVeicoloRepo) Exists(_ context.Context, telaio string) (bool, error) {
	_, ok := f.veicoli[telaio]
	return ok, nil
}

func (f *memVeicoloRepo) Create(_ context.Context, v *veicolo.Veicolo) error {
	if _, ok := f.veicoli[v.Telaio]; ok {
		return veicolo.ErrTelaioExists
	}
	copied := *v
	f.veicoli[v.Telaio] = &copied
	return nil
}

func (f *memVeicoloRepo) Update(_ context.Context, telaio string, v *veicolo.Veicolo) error {
	if _, ok := f.veicoli[telaio]; !ok {
		return veicolo.ErrNotFound
	}
	delete(f.veicoli, telaio)
	copied := *v
	f.veicoli[v.Telaio] = &copied
	return nil
}

func (f *memVeicoloRepo) Delete(_ context.Context, telaio string) error {
	if _, ok := f.veicoli[telaio]; !ok {
		return veicolo.ErrNotFound
	}
	delete(f.veicoli, telaio)
	return nil
}

type fixture struct {
	router   *mux.Router
	tableRep *fakeTableRepo
	veicoli  *memVeicoloRepo
}

func newFixture(t *testing.T, authenticated bool) *fixture {
	t.Helper()
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "app.log"))

	logger := logrus.New()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Bundle:   application.LoadBundle(),
	})
	tableRep := &fakeTableRepo{}
	veicoli := &memVeicoloRepo{veicoli: map[string]*veicolo.Veicolo{}}
	app.RegisterServices(
		services.NewTableService(tableRep, &fakeStatsRepo{}),
		services.NewVeicoloService(veicoli, app.EventPublisher()),
	)

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := composables.WithParams(r.Context(), &composables.Params{
				Authenticated: authenticated,
				Request:       r,
				Writer:        w,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	controllers.NewTableController(app).Register(router)
	controllers.NewVeicoliController(app).Register(router)
	controllers.NewPagesController(app).Register(router)
	return &fixture{router: router, tableRep: tableRep, veicoli: veicoli}
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func body(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestTableAPI_RequiresAuthentication(t *testing.T) {
	f := newFixture(t, false)

	rec := f.get("/api/table?table=veicolo")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Autenticazione richiesta", body(t, rec)["message"])

	rec = f.get("/api/veicoli")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTableAPI_UnknownTable(t *testing.T) {
	f := newFixture(t, true)

	rec := f.get("/api/table?table=utenti")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := body(t, rec)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "Tabella non valida", resp["message"])
}

func TestTableAPI_FetchEnvelope(t *testing.T) {
	f := newFixture(t, true)
	f.tableRep.rows = []datatable.Row{
		{"numero": "AB123CD", "dataEm": "2021-03-01", "stato": "Attiva"},
	}

	rec := f.get("/api/table?table=targa&numero=ab&sort=dataEm&order=DESC")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := body(t, rec)
	assert.Equal(t, "success", resp["status"])
	rows := resp["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Attiva", rows[0].(map[string]any)["stato"])

	cols := resp["columns"].([]any)
	require.Len(t, cols, 3)
	first := cols[0].(map[string]any)
	assert.Equal(t, "numero", first["name"])
	assert.Equal(t, "Numero", first["label"])
	assert.Equal(t, true, first["isLink"])

	// The order parameter is normalized before it reaches the query.
	assert.Equal(t, "dataEm", f.tableRep.lastQry.Sort)
	assert.Equal(t, "desc", f.tableRep.lastQry.Order)
	assert.Equal(t, "ab", f.tableRep.lastQry.Filters.Get("numero"))
}

func TestTableAPI_TargheAlias(t *testing.T) {
	f := newFixture(t, true)

	rec := f.get("/api/targhe")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tables.Targa, f.tableRep.lastQry.Table)
}

func veicoloForm() url.Values {
	return url.Values{
		"telaio":   {"ZFA19200001"},
		"marca":    {"Fiat"},
		"modello":  {"Panda"},
		"dataProd": {"2020-05-01"},
	}
}

func TestVeicoliAPI_CreateValidation(t *testing.T) {
	f := newFixture(t, true)

	form := veicoloForm()
	form.Del("marca")
	rec := f.post("/api/veicoli/add", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Campo marca obbligatorio", body(t, rec)["message"])

	form = veicoloForm()
	form.Set("dataProd", "01/05/2020")
	rec = f.post("/api/veicoli/add", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Formato data non valido (YYYY-MM-DD)", body(t, rec)["message"])
}

func TestVeicoliAPI_CreateAndDetail(t *testing.T) {
	f := newFixture(t, true)

	rec := f.post("/api/veicoli/add", veicoloForm())
	require.Equal(t, http.StatusOK, rec.Code)
	resp := body(t, rec)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "Veicolo aggiunto con successo", resp["message"])

	rec = f.get("/api/veicoli/ZFA19200001/detail")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body(t, rec)["data"].(map[string]any)
	assert.Equal(t, "ZFA19200001", data["telaio"])
	assert.Equal(t, "Fiat", data["marca"])
	assert.Equal(t, "Panda", data["modello"])
	assert.Equal(t, "2020-05-01", data["dataProd"])
}

func TestVeicoliAPI_CreateDuplicate(t *testing.T) {
	f := newFixture(t, true)
	require.Equal(t, http.StatusOK, f.post("/api/veicoli/add", veicoloForm()).Code)

	rec := f.post("/api/veicoli/add", veicoloForm())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Numero di telaio già esistente", body(t, rec)["message"])
}

func TestVeicoliAPI_DetailNotFound(t *testing.T) {
	f := newFixture(t, true)

	rec := f.get("/api/veicoli/MISSING/detail")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Veicolo non trovato", body(t, rec)["message"])
}

func TestVeicoliAPI_PartialUpdate(t *testing.T) {
	f := newFixture(t, true)
	require.Equal(t, http.StatusOK, f.post("/api/veicoli/add", veicoloForm()).Code)

	rec := f.post("/api/veicoli/ZFA19200001/update", url.Values{"modello": {"Panda Cross"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Veicolo aggiornato con successo", body(t, rec)["message"])

	v, err := f.veicoli.GetByTelaio(context.Background(), "ZFA19200001")
	require.NoError(t, err)
	assert.Equal(t, "Panda Cross", v.Modello)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Fiat", v.Marca)
	assert.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), v.DataProd)
}

func TestVeicoliAPI_UpdateRenameConflict(t *testing.T) {
	f := newFixture(t, true)
	require.Equal(t, http.StatusOK, f.post("/api/veicoli/add", veicoloForm()).Code)
	other := veicoloForm()
	other.Set("telaio", "ZFA19200002")
	require.Equal(t, http.StatusOK, f.post("/api/veicoli/add", other).Code)

	rec := f.post("/api/veicoli/ZFA19200001/update", url.Values{"telaio": {"ZFA19200002"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Numero di telaio già esistente", body(t, rec)["message"])
}

func TestVeicoliAPI_UpdateNotFound(t *testing.T) {
	f := newFixture(t, true)

	rec := f.post("/api/veicoli/MISSING/update", url.Values{"marca": {"Fiat"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Veicolo non trovato", body(t, rec)["message"])
}

func TestVeicoliAPI_Delete(t *testing.T) {
	f := newFixture(t, true)
	require.Equal(t, http.StatusOK, f.post("/api/veicoli/add", veicoloForm()).Code)

	rec := f.post("/api/veicoli/ZFA19200001/delete", url.Values{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Veicolo eliminato con successo", body(t, rec)["message"])

	rec = f.post("/api/veicoli/ZFA19200001/delete", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
