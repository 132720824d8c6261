// Package reporting aggregates spesa lines into the views the reporting
// surface serves: the period trend, the per-categoria breakdown, the
// two-period comparison and the voce/categoria pivot table.
//
// All aggregation functions are pure over a slice of Row. Load is the only
// place the package touches the database.
package reporting

import (
	"sort"

	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Placeholders used when a line's classification has no resolvable name.
const (
	PlaceholderVoce      = "Non definita"
	PlaceholderCategoria = "Altro"
)

// Row is one spesa line flattened for aggregation: the period, the
// classification names, the type of the owning spesa and the amount.
type Row struct {
	Period         types.Period
	VoceID         uuid.UUID
	CategoriaID    uuid.UUID
	SubCategoriaID *uuid.UUID
	VoceName       string
	CategoriaName  string
	Type           models.SpesaType
	Amount         decimal.Decimal
}

func (r Row) voce() string {
	if r.VoceName == "" {
		return PlaceholderVoce
	}
	return r.VoceName
}

func (r Row) categoria() string {
	if r.CategoriaName == "" {
		return PlaceholderCategoria
	}
	return r.CategoriaName
}

func (r Row) spesaType() models.SpesaType {
	if r.Type == "" {
		return models.SpesaTypeACT
	}
	return r.Type
}

// Filter restricts the row set every view aggregates over.
//
// Nil/zero IDs mean "all". An empty Type selects both types, which switches
// the views into dual mode: they then report ACT and BUDGET side by side
// instead of a single series.
type Filter struct {
	From           types.Period
	To             types.Period
	VoceID         uuid.UUID
	CategoriaID    uuid.UUID
	SubCategoriaID uuid.UUID
	Type           models.SpesaType
}

// Dual reports whether the views render both types side by side.
func (f Filter) Dual() bool {
	return f.Type == ""
}

// Apply returns the rows matching the filter.
func (f Filter) Apply(rows []Row) []Row {
	matched := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Period.Before(f.From) || row.Period.After(f.To) {
			continue
		}
		if f.VoceID != uuid.Nil && row.VoceID != f.VoceID {
			continue
		}
		if f.CategoriaID != uuid.Nil && row.CategoriaID != f.CategoriaID {
			continue
		}
		if f.SubCategoriaID != uuid.Nil && (row.SubCategoriaID == nil || *row.SubCategoriaID != f.SubCategoriaID) {
			continue
		}
		if !f.Dual() && row.spesaType() != f.Type {
			continue
		}

		matched = append(matched, row)
	}

	return matched
}

// categoriaNames returns the distinct categoria display names of the rows
// in stable alphabetical order.
func categoriaNames(rows []Row) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, row := range rows {
		name := row.categoria()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}
