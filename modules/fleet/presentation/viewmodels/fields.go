package viewmodels

import (
	"github.com/mnicoli13/programmazione-web-2/components/datatable"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
)

// fieldConfig is the catalog of every filterable field across the fleet
// pages; each page picks its subset.
var fieldConfig = map[string]datatable.FilterField{
	"telaio": {
		Name: "telaio", Label: "Numero Telaio", Placeholder: "Cerca per telaio...",
		Type: datatable.TextFilter, Icon: "bi-upc-scan",
	},
	"marca": {
		Name: "marca", Label: "Marca", Placeholder: "Cerca per marca...",
		Type: datatable.TextFilter, Icon: "bi-building",
	},
	"modello": {
		Name: "modello", Label: "Modello", Placeholder: "Cerca per modello...",
		Type: datatable.TextFilter, Icon: "bi-car-front",
	},
	"dataProd": {
		Name: "dataProd", Label: "Data Produzione", Placeholder: "Seleziona data...",
		Type: datatable.DateFilter, Icon: "bi-calendar-date",
	},
	"numero": {
		Name: "numero", Label: "Numero", Placeholder: "Cerca per numero...",
		Type: datatable.TextFilter, Icon: "bi-tag",
	},
	"dataEm": {
		Name: "dataEm", Label: "Data Emissione", Placeholder: "Seleziona data...",
		Type: datatable.DateFilter, Icon: "bi-calendar-date",
	},
	"stato": {
		Name: "stato", Label: "Stato Targa", Placeholder: "Seleziona stato...",
		Type: datatable.SelectFilter, Icon: "bi-flag",
		Options: []datatable.FilterOption{
			{Value: "Attiva", Label: "Attiva"},
			{Value: "Restituita", Label: "Restituita"},
			{Value: "Non assegnata", Label: "Non assegnata"},
		},
	},
	"targa": {
		Name: "targa", Label: "Targa", Placeholder: "Cerca per targa...",
		Type: datatable.TextFilter, Icon: "bi-tag",
	},
	"veicolo": {
		Name: "veicolo", Label: "Veicolo", Placeholder: "Cerca per veicolo...",
		Type: datatable.TextFilter, Icon: "bi-car-front",
	},
	"dataRev": {
		Name: "dataRev", Label: "Data Revisione", Placeholder: "Seleziona data...",
		Type: datatable.DateFilter, Icon: "bi-calendar-check",
	},
	"dataRes": {
		Name: "dataRes", Label: "Data Restituzione", Placeholder: "Seleziona data...",
		Type: datatable.DateFilter, Icon: "bi-calendar-x",
	},
	"esito": {
		Name: "esito", Label: "Esito Revisione", Placeholder: "Seleziona esito...",
		Type: datatable.SelectFilter, Icon: "bi-clipboard-check",
		Options: []datatable.FilterOption{
			{Value: "positivo", Label: "Positivo"},
			{Value: "negativo", Label: "Negativo"},
		},
	},
	"motivazione": {
		Name: "motivazione", Label: "Motivazione", Placeholder: "Cerca per motivazione...",
		Type: datatable.TextFilter, Icon: "bi-chat-text",
	},
}

var tableFields = map[string][]string{
	tables.Veicolo:         {"telaio", "marca", "modello", "dataProd"},
	tables.Targa:           {"numero", "dataEm", "stato"},
	tables.TargaAttiva:     {"targa", "veicolo", "dataEm"},
	tables.TargaRestituita: {"targa", "veicolo", "dataEm", "dataRes"},
	tables.Revisione:       {"numero", "targa", "dataRev", "esito", "motivazione"},
}

// FilterFields returns the filter bar configuration of a logical table.
func FilterFields(table string) []datatable.FilterField {
	names := tableFields[table]
	fields := make([]datatable.FilterField, 0, len(names))
	for _, name := range names {
		fields = append(fields, fieldConfig[name])
	}
	return fields
}
