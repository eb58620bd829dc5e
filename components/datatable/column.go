package datatable

import (
	"fmt"
	"time"
)

// ColumnType drives how a cell value is rendered.
type ColumnType string

const (
	PlainColumn  ColumnType = ""
	DateColumn   ColumnType = "date"
	StatusColumn ColumnType = "status"
)

// Column describes one table column as delivered to clients. The JSON
// shape is part of the table API contract.
type Column struct {
	Name       string     `json:"name"`
	Label      string     `json:"label"`
	Type       ColumnType `json:"type,omitempty"`
	IsLink     bool       `json:"isLink,omitempty"`
	LinkTarget string     `json:"linkTarget,omitempty"`
}

// Row maps column names to scalar values.
type Row map[string]any

// CellText returns the display text for a cell. Absent and falsy values
// render as the empty string; date values are reformatted for the
// Italian locale.
func CellText(col Column, row Row) string {
	raw := RawValue(col, row)
	if raw == "" {
		return ""
	}
	if col.Type == DateColumn {
		return FormatDate(raw)
	}
	return raw
}

// RawValue stringifies the underlying cell value, "" for nil/absent.
func RawValue(col Column, row Row) string {
	v, ok := row[col.Name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", t)
	}
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FormatDate renders an ISO date in the dd/mm/yyyy form used by the
// it-IT locale. Unparseable input yields "" rather than an error: a
// malformed date must never break a table render.
func FormatDate(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return ""
}

// Badge is the colored status marker rendered for status columns.
type Badge struct {
	Class string
	Icon  string
}

// StatusBadge maps a status value onto its badge. Anything that is not a
// known state, including the empty string, falls back to the neutral
// badge.
func StatusBadge(value string) Badge {
	switch value {
	case "Attiva":
		return Badge{Class: "bg-success", Icon: "bi-check-circle-fill"}
	case "Restituita":
		return Badge{Class: "bg-warning text-dark", Icon: "bi-arrow-return-left"}
	default:
		return Badge{Class: "bg-secondary", Icon: "bi-dash-circle"}
	}
}
