package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/components/datatable"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/domain/tables"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
)

const isoDate = "2006-01-02"

const targaStatoExpr = `CASE
		WHEN ta.targa IS NOT NULL THEN 'Attiva'
		WHEN tr.targa IS NOT NULL THEN 'Restituita'
		ELSE 'Non assegnata'
	END`

const (
	selectVeicoliQuery = `
		SELECT telaio, marca, modello, data_prod
		FROM veicoli`

	selectTargheQuery = `
		SELECT t.numero, t.data_em, ` + targaStatoExpr + ` AS stato
		FROM targhe t
		LEFT JOIN targhe_attive ta ON ta.targa = t.numero
		LEFT JOIN targhe_restituite tr ON tr.targa = t.numero`

	selectRevisioniQuery = `
		SELECT r.numero, r.targa, r.data_rev, r.esito, r.motivazione
		FROM revisioni r`

	selectTargheAttiveQuery = `
		SELECT ta.targa, ta.veicolo, v.marca, v.modello, t.data_em
		FROM targhe_attive ta
		JOIN targhe t ON t.numero = ta.targa
		JOIN veicoli v ON v.telaio = ta.veicolo`

	selectTargheRestituiteQuery = `
		SELECT tr.targa, tr.veicolo, v.marca, v.modello, t.data_em, tr.data_res
		FROM targhe_restituite tr
		JOIN targhe t ON t.numero = tr.targa
		JOIN veicoli v ON v.telaio = tr.veicolo`
)

// tableSQL binds a logical table to its query, the SQL expression behind
// each filterable field and the scanner producing one row.
type tableSQL struct {
	base         string
	filterExpr   map[string]string
	defaultOrder string
	scan         func(rows *sqlx.Rows) (datatable.Row, error)
}

var tableQueries = map[string]tableSQL{
	tables.Veicolo: {
		base: selectVeicoliQuery,
		filterExpr: map[string]string{
			"telaio":   "telaio",
			"marca":    "marca",
			"modello":  "modello",
			"dataProd": "data_prod",
		},
		defaultOrder: "telaio ASC",
		scan:         scanVeicolo,
	},
	tables.Targa: {
		base: selectTargheQuery,
		filterExpr: map[string]string{
			"numero": "t.numero",
			"dataEm": "t.data_em",
			"stato":  targaStatoExpr,
		},
		defaultOrder: "t.numero ASC",
		scan:         scanTarga,
	},
	tables.Revisione: {
		base: selectRevisioniQuery,
		filterExpr: map[string]string{
			"numero":      "r.numero::text",
			"targa":       "r.targa",
			"dataRev":     "r.data_rev",
			"esito":       "r.esito",
			"motivazione": "r.motivazione",
		},
		defaultOrder: "r.data_rev DESC",
		scan:         scanRevisione,
	},
	tables.TargaAttiva: {
		base: selectTargheAttiveQuery,
		filterExpr: map[string]string{
			"targa":   "ta.targa",
			"veicolo": "ta.veicolo",
			"dataEm":  "t.data_em",
		},
		scan: scanTargaAttiva,
	},
	tables.TargaRestituita: {
		base: selectTargheRestituiteQuery,
		filterExpr: map[string]string{
			"targa":   "tr.targa",
			"veicolo": "tr.veicolo",
			"dataEm":  "t.data_em",
			"dataRes": "tr.data_res",
		},
		scan: scanTargaRestituita,
	},
}

type TableRepository struct{}

func NewTableRepository() tables.Repository {
	return &TableRepository{}
}

func (g *TableRepository) Fetch(ctx context.Context, q tables.Query) (*tables.Result, error) {
	def, ok := tables.Get(q.Table)
	if !ok {
		return nil, tables.ErrUnknownTable
	}
	spec := tableQueries[q.Table]

	db, err := composables.UseDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args := buildQuery(spec, def, q)
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query table %s", q.Table)
	}
	defer rows.Close()

	result := &tables.Result{
		Rows:    []datatable.Row{},
		Columns: def.Columns,
	}
	for rows.Next() {
		row, err := spec.scan(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan table %s", q.Table)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read table %s", q.Table)
	}
	return result, nil
}

// buildQuery appends the WHERE and ORDER BY clauses. Filter fields and
// sort expressions come from the table definition, never from client
// input.
func buildQuery(spec tableSQL, def tables.Definition, q tables.Query) (string, []any) {
	var (
		where []string
		args  []any
	)
	for _, f := range def.Filters {
		value := strings.TrimSpace(q.Filters.Get(f.Field))
		if value == "" {
			continue
		}
		expr := spec.filterExpr[f.Field]
		switch f.Kind {
		case tables.Contains:
			where = append(where, fmt.Sprintf("%s ILIKE $%d", expr, len(args)+1))
			args = append(args, "%"+value+"%")
		default:
			where = append(where, fmt.Sprintf("%s = $%d", expr, len(args)+1))
			args = append(args, value)
		}
	}

	query := spec.base
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}

	order := spec.defaultOrder
	if expr, ok := def.Sortable[q.Sort]; q.Sort != "" && ok {
		direction := "ASC"
		if q.Desc() {
			direction = "DESC"
		}
		order = expr + " " + direction
	}
	if order != "" {
		query += "\n\t\tORDER BY " + order
	}
	return query, args
}

func scanVeicolo(rows *sqlx.Rows) (datatable.Row, error) {
	var (
		telaio, marca, modello string
		dataProd               time.Time
	)
	if err := rows.Scan(&telaio, &marca, &modello, &dataProd); err != nil {
		return nil, err
	}
	return datatable.Row{
		"telaio":   telaio,
		"marca":    marca,
		"modello":  modello,
		"dataProd": dataProd.Format(isoDate),
	}, nil
}

func scanTarga(rows *sqlx.Rows) (datatable.Row, error) {
	var (
		numero, stato string
		dataEm        time.Time
	)
	if err := rows.Scan(&numero, &dataEm, &stato); err != nil {
		return nil, err
	}
	return datatable.Row{
		"numero": numero,
		"dataEm": dataEm.Format(isoDate),
		"stato":  stato,
	}, nil
}

func scanRevisione(rows *sqlx.Rows) (datatable.Row, error) {
	var (
		numero       int64
		targa, esito string
		dataRev      time.Time
		motivazione  sql.NullString
	)
	if err := rows.Scan(&numero, &targa, &dataRev, &esito, &motivazione); err != nil {
		return nil, err
	}
	row := datatable.Row{
		"numero":      numero,
		"targa":       targa,
		"dataRev":     dataRev.Format(isoDate),
		"esito":       esito,
		"motivazione": nil,
	}
	if motivazione.Valid {
		row["motivazione"] = motivazione.String
	}
	return row, nil
}

func scanTargaAttiva(rows *sqlx.Rows) (datatable.Row, error) {
	var (
		targa, veicolo, marca, modello string
		dataEm                         time.Time
	)
	if err := rows.Scan(&targa, &veicolo, &marca, &modello, &dataEm); err != nil {
		return nil, err
	}
	return datatable.Row{
		"targa":   targa,
		"veicolo": veicolo,
		"marca":   marca,
		"modello": modello,
		"dataEm":  dataEm.Format(isoDate),
	}, nil
}

func scanTargaRestituita(rows *sqlx.Rows) (datatable.Row, error) {
	var (
		targa, veicolo, marca, modello string
		dataEm, dataRes                time.Time
	)
	if err := rows.Scan(&targa, &veicolo, &marca, &modello, &dataEm, &dataRes); err != nil {
		return nil, err
	}
	return datatable.Row{
		"targa":   targa,
		"veicolo": veicolo,
		"marca":   marca,
		"modello": modello,
		"dataEm":  dataEm.Format(isoDate),
		"dataRes": dataRes.Format(isoDate),
	}, nil
}
