package reporting

import (
	"fmt"

	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ComparisonRow is one categoria of the two-period comparison, with one sum
// per period column.
type ComparisonRow struct {
	Categoria string                     `json:"categoria" example:"Condominio"` // Display name of the categoria
	Values    map[string]decimal.Decimal `json:"values"`                         // Sum per period column key
}

// comparisonLabel is the column label of a comparison period. Unlike the
// trend label it carries the full year, the two columns are usually a year
// apart.
func comparisonLabel(p types.Period) string {
	return fmt.Sprintf("%s %d", types.MonthName(p.Month())[:3], p.Year())
}

// ComparisonKeys returns the column keys of a comparison between the two
// periods, in display order.
func ComparisonKeys(filter Filter, p1, p2 types.Period) []string {
	l1, l2 := comparisonLabel(p1), comparisonLabel(p2)
	if filter.Dual() {
		return []string{
			fmt.Sprintf("%s ACT", l1), fmt.Sprintf("%s BUDGET", l1),
			fmt.Sprintf("%s ACT", l2), fmt.Sprintf("%s BUDGET", l2),
		}
	}

	return []string{l1, l2}
}

// Comparison sums the filtered rows per categoria for the two periods.
// Categorie where every column is zero are dropped, the comparison only
// shows what was actually spent in at least one of the two periods.
func Comparison(rows []Row, filter Filter, p1, p2 types.Period) []ComparisonRow {
	rows = filter.Apply(rows)

	sum := func(period types.Period, categoria string, spesaType models.SpesaType) decimal.Decimal {
		total := decimal.Zero
		for _, row := range rows {
			if !row.Period.Equal(period) || row.categoria() != categoria {
				continue
			}
			if spesaType != "" && row.spesaType() != spesaType {
				continue
			}
			total = total.Add(row.Amount)
		}
		return total
	}

	l1, l2 := comparisonLabel(p1), comparisonLabel(p2)

	result := make([]ComparisonRow, 0)
	for _, categoria := range categoriaNames(rows) {
		row := ComparisonRow{Categoria: categoria, Values: make(map[string]decimal.Decimal)}

		if filter.Dual() {
			row.Values[fmt.Sprintf("%s ACT", l1)] = sum(p1, categoria, models.SpesaTypeACT)
			row.Values[fmt.Sprintf("%s BUDGET", l1)] = sum(p1, categoria, models.SpesaTypeBUDGET)
			row.Values[fmt.Sprintf("%s ACT", l2)] = sum(p2, categoria, models.SpesaTypeACT)
			row.Values[fmt.Sprintf("%s BUDGET", l2)] = sum(p2, categoria, models.SpesaTypeBUDGET)
		} else {
			row.Values[l1] = sum(p1, categoria, "")
			row.Values[l2] = sum(p2, categoria, "")
		}

		keep := false
		for _, value := range row.Values {
			if value.IsPositive() {
				keep = true
				break
			}
		}
		if keep {
			result = append(result, row)
		}
	}

	return result
}
