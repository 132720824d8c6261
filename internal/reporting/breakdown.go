package reporting

import (
	"fmt"

	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
)

// BreakdownPoint is one period of the per-categoria breakdown.
type BreakdownPoint struct {
	Label     string                     `json:"label" example:"Gen 25"`           // Short display label of the period
	FullLabel string                     `json:"fullLabel" example:"Gennaio 2025"` // Long display label of the period
	Values    map[string]decimal.Decimal `json:"values"`                           // Sum per categoria key
}

func dualKey(categoria string, spesaType models.SpesaType) string {
	return fmt.Sprintf("%s|%s", categoria, spesaType)
}

// Breakdown sums the rows per period and categoria over the full filter
// range, future periods included. The second return value lists the series
// keys: the categoria names, or in dual mode a "<Categoria>|ACT" and
// "<Categoria>|BUDGET" pair per name. Every point carries every key so
// absent combinations show up as zero.
func Breakdown(rows []Row, filter Filter) ([]BreakdownPoint, []string) {
	rows = filter.Apply(rows)
	names := categoriaNames(rows)

	keys := make([]string, 0, len(names)*2)
	for _, name := range names {
		if filter.Dual() {
			keys = append(keys, dualKey(name, models.SpesaTypeACT), dualKey(name, models.SpesaTypeBUDGET))
		} else {
			keys = append(keys, name)
		}
	}

	points := make([]BreakdownPoint, 0)
	for _, period := range types.PeriodRange(filter.From, filter.To) {
		point := BreakdownPoint{
			Label:     period.Label(),
			FullLabel: period.FullLabel(),
			Values:    make(map[string]decimal.Decimal, len(keys)),
		}
		for _, key := range keys {
			point.Values[key] = decimal.Zero
		}

		for _, row := range rows {
			if !row.Period.Equal(period) {
				continue
			}

			key := row.categoria()
			if filter.Dual() {
				key = dualKey(row.categoria(), row.spesaType())
			}
			point.Values[key] = point.Values[key].Add(row.Amount)
		}

		points = append(points, point)
	}

	return points, keys
}
