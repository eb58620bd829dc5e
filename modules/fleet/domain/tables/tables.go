package tables

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/components/datatable"
)

var ErrUnknownTable = errors.New("unknown table")

// Table names accepted by the table API.
const (
	Veicolo         = "veicolo"
	Targa           = "targa"
	Revisione       = "revisione"
	TargaAttiva     = "targa_attiva"
	TargaRestituita = "targa_restituita"
)

// FilterKind selects how a filter value is matched against its column.
type FilterKind int

const (
	// Contains matches substrings case-insensitively.
	Contains FilterKind = iota
	// Equals matches the value exactly (dates, enumerations).
	Equals
)

// Filter is one filterable field of a table.
type Filter struct {
	Field string
	Kind  FilterKind
}

// Definition describes one logical table of the fleet: its response
// columns, which fields can filter it and which can sort it.
type Definition struct {
	Name    string
	Columns []datatable.Column
	Filters []Filter
	// Sortable maps API field names onto SQL sort expressions.
	Sortable map[string]string
}

// Query is a client request against one logical table.
type Query struct {
	Table   string
	Filters url.Values
	Sort    string
	Order   string
}

// Desc reports whether the requested order is descending; anything but
// "desc" sorts ascending.
func (q Query) Desc() bool {
	return q.Order == "desc"
}

// Result carries the rows and the column metadata of one fetch.
type Result struct {
	Rows    []datatable.Row
	Columns []datatable.Column
}

// Repository is the read port behind the table API.
type Repository interface {
	Fetch(ctx context.Context, q Query) (*Result, error)
}

// Stats are the dashboard counters.
type Stats struct {
	TotalVeicoli      int
	TotalTarghe       int
	TargheAttive      int
	TargheRestituite  int
	RevisioniTotali   int
	RevisioniPositive int
	RevisioniNegative int
}

// StatsRepository is the read port behind the dashboard.
type StatsRepository interface {
	Stats(ctx context.Context) (*Stats, error)
}

var definitions = map[string]Definition{
	Veicolo: {
		Name: Veicolo,
		Columns: []datatable.Column{
			{Name: "telaio", Label: "Telaio", IsLink: true, LinkTarget: "veicoli"},
			{Name: "marca", Label: "Marca"},
			{Name: "modello", Label: "Modello"},
			{Name: "dataProd", Label: "Data Produzione", Type: datatable.DateColumn},
		},
		Filters: []Filter{
			{Field: "telaio", Kind: Contains},
			{Field: "marca", Kind: Contains},
			{Field: "modello", Kind: Contains},
			{Field: "dataProd", Kind: Equals},
		},
		Sortable: map[string]string{
			"telaio":   "telaio",
			"marca":    "marca",
			"modello":  "modello",
			"dataProd": "data_prod",
		},
	},
	Targa: {
		Name: Targa,
		Columns: []datatable.Column{
			{Name: "numero", Label: "Numero", IsLink: true, LinkTarget: "targhe"},
			{Name: "dataEm", Label: "Data Emissione", Type: datatable.DateColumn},
			{Name: "stato", Label: "Stato", Type: datatable.StatusColumn},
		},
		Filters: []Filter{
			{Field: "numero", Kind: Contains},
			{Field: "dataEm", Kind: Equals},
			{Field: "stato", Kind: Equals},
		},
		Sortable: map[string]string{
			"numero": "t.numero",
			"dataEm": "t.data_em",
			"stato":  "stato",
		},
	},
	Revisione: {
		Name: Revisione,
		Columns: []datatable.Column{
			{Name: "numero", Label: "Numero"},
			{Name: "targa", Label: "Targa", IsLink: true, LinkTarget: "targhe"},
			{Name: "dataRev", Label: "Data Revisione", Type: datatable.DateColumn},
			{Name: "esito", Label: "Esito"},
			{Name: "motivazione", Label: "Motivazione"},
		},
		Filters: []Filter{
			{Field: "numero", Kind: Contains},
			{Field: "targa", Kind: Contains},
			{Field: "dataRev", Kind: Equals},
			{Field: "esito", Kind: Equals},
			{Field: "motivazione", Kind: Contains},
		},
		Sortable: map[string]string{
			"numero":      "numero",
			"targa":       "targa",
			"dataRev":     "data_rev",
			"esito":       "esito",
			"motivazione": "motivazione",
		},
	},
	TargaAttiva: {
		Name: TargaAttiva,
		Columns: []datatable.Column{
			{Name: "targa", Label: "Targa", IsLink: true, LinkTarget: "targhe"},
			{Name: "veicolo", Label: "Telaio Veicolo", IsLink: true, LinkTarget: "veicoli"},
			{Name: "marca", Label: "Marca"},
			{Name: "modello", Label: "Modello"},
			{Name: "dataEm", Label: "Data Emissione", Type: datatable.DateColumn},
		},
		Filters: []Filter{
			{Field: "targa", Kind: Contains},
			{Field: "veicolo", Kind: Contains},
			{Field: "dataEm", Kind: Equals},
		},
		Sortable: map[string]string{
			"targa":   "ta.targa",
			"veicolo": "ta.veicolo",
			"marca":   "v.marca",
			"modello": "v.modello",
			"dataEm":  "t.data_em",
		},
	},
	TargaRestituita: {
		Name: TargaRestituita,
		Columns: []datatable.Column{
			{Name: "targa", Label: "Targa", IsLink: true, LinkTarget: "targhe"},
			{Name: "veicolo", Label: "Telaio Veicolo", IsLink: true, LinkTarget: "veicoli"},
			{Name: "marca", Label: "Marca"},
			{Name: "modello", Label: "Modello"},
			{Name: "dataEm", Label: "Data Emissione", Type: datatable.DateColumn},
			{Name: "dataRes", Label: "Data Restituzione", Type: datatable.DateColumn},
		},
		Filters: []Filter{
			{Field: "targa", Kind: Contains},
			{Field: "veicolo", Kind: Contains},
			{Field: "dataEm", Kind: Equals},
			{Field: "dataRes", Kind: Equals},
		},
		Sortable: map[string]string{
			"targa":   "tr.targa",
			"veicolo": "tr.veicolo",
			"marca":   "v.marca",
			"modello": "v.modello",
			"dataEm":  "t.data_em",
			"dataRes": "tr.data_res",
		},
	},
}

// Get returns the definition of a logical table.
func Get(name string) (Definition, bool) {
	def, ok := definitions[name]
	return def, ok
}
