package reporting

import (
	"sort"

	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
)

// PivotRow is one voce/categoria row of the pivot table with one cell per
// period column and a trailing total.
type PivotRow struct {
	Voce      string                     `json:"voce" example:"Case"`            // Display name of the voce
	Categoria string                     `json:"categoria" example:"Condominio"` // Display name of the categoria
	Tipo      models.SpesaType           `json:"tipo,omitempty" example:"ACT"`   // Type of the row, set in dual mode only
	Cols      map[string]decimal.Decimal `json:"cols"`                           // Sum per period column
	Total     decimal.Decimal            `json:"total" example:"450"`            // Sum across all period columns
}

// PivotFooter is a footer row summing every column across the kept rows.
type PivotFooter struct {
	Tipo  models.SpesaType           `json:"tipo,omitempty" example:"ACT"` // Type the footer sums, set in dual mode only
	Cols  map[string]decimal.Decimal `json:"cols"`                         // Column sums
	Total decimal.Decimal            `json:"total" example:"450"`          // Sum across all columns
}

// PivotTable is the voce/categoria summary table.
type PivotTable struct {
	ColKeys []string      `json:"colKeys"` // Period column keys in chronological order
	Rows    []PivotRow    `json:"rows"`    // Table rows, sorted by voce then categoria
	Footers []PivotFooter `json:"footers"` // One footer, or one per type in dual mode
}

type pivotGroup struct {
	voce      string
	categoria string
	tipo      models.SpesaType
}

// Pivot builds the summary table over the full filter range. Rows are the
// distinct voce/categoria combinations of the filtered rows, sorted by voce
// then categoria; in dual mode each combination splits into an ACT and a
// BUDGET row and combinations with a zero total are dropped.
func Pivot(rows []Row, filter Filter) PivotTable {
	rows = filter.Apply(rows)

	periods := types.PeriodRange(filter.From, filter.To)
	colKeys := make([]string, 0, len(periods))
	for _, period := range periods {
		colKeys = append(colKeys, period.Label())
	}

	sums := make(map[pivotGroup]map[string]decimal.Decimal)
	for _, row := range rows {
		group := pivotGroup{voce: row.voce(), categoria: row.categoria()}
		if filter.Dual() {
			group.tipo = row.spesaType()
		}

		if sums[group] == nil {
			sums[group] = make(map[string]decimal.Decimal)
		}
		key := row.Period.Label()
		sums[group][key] = sums[group][key].Add(row.Amount)
	}

	groups := make([]pivotGroup, 0, len(sums))
	for group := range sums {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].voce != groups[j].voce {
			return groups[i].voce < groups[j].voce
		}
		if groups[i].categoria != groups[j].categoria {
			return groups[i].categoria < groups[j].categoria
		}
		return groups[i].tipo < groups[j].tipo
	})

	table := PivotTable{ColKeys: colKeys, Rows: make([]PivotRow, 0, len(groups))}
	for _, group := range groups {
		row := PivotRow{
			Voce:      group.voce,
			Categoria: group.categoria,
			Tipo:      group.tipo,
			Cols:      make(map[string]decimal.Decimal, len(colKeys)),
			Total:     decimal.Zero,
		}
		for _, key := range colKeys {
			value := sums[group][key]
			row.Cols[key] = value
			row.Total = row.Total.Add(value)
		}

		if filter.Dual() && !row.Total.IsPositive() {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	footerTypes := []models.SpesaType{""}
	if filter.Dual() {
		footerTypes = []models.SpesaType{models.SpesaTypeACT, models.SpesaTypeBUDGET}
	}
	for _, tipo := range footerTypes {
		footer := PivotFooter{Tipo: tipo, Cols: make(map[string]decimal.Decimal, len(colKeys)), Total: decimal.Zero}
		for _, key := range colKeys {
			footer.Cols[key] = decimal.Zero
		}
		for _, row := range table.Rows {
			if filter.Dual() && row.Tipo != tipo {
				continue
			}
			for _, key := range colKeys {
				footer.Cols[key] = footer.Cols[key].Add(row.Cols[key])
			}
			footer.Total = footer.Total.Add(row.Total)
		}
		table.Footers = append(table.Footers, footer)
	}

	return table
}
