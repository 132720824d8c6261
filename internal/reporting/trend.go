package reporting

import (
	"fmt"

	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// TrendPoint is one point of the period trend: the period labels and the
// sums for every series key.
type TrendPoint struct {
	Label     string                     `json:"label" example:"Gen 25"`        // Short display label of the period
	FullLabel string                     `json:"fullLabel" example:"Gennaio 2025"` // Long display label of the period
	Values    map[string]decimal.Decimal `json:"values"`                        // Sum per series key
}

// CompareYearKey is the series key of a comparison year.
func CompareYearKey(year int) string {
	return fmt.Sprintf("anno_%d", year)
}

// TrendKeys returns the series keys the trend carries for the filter and
// comparison years, in display order.
func TrendKeys(filter Filter, compareYears []int) []string {
	if len(compareYears) > 0 {
		keys := make([]string, 0, len(compareYears))
		for _, year := range compareYears {
			keys = append(keys, CompareYearKey(year))
		}
		return keys
	}

	if filter.Dual() {
		return []string{string(models.SpesaTypeACT), string(models.SpesaTypeBUDGET)}
	}

	return []string{string(filter.Type)}
}

// Trend aggregates the rows into one point per period of the filter range.
//
// Periods after now are dropped, the trend only shows months that have
// started. The point carries one sum per type, or one for the filtered
// type. With comparison years every point instead carries one sum per
// year for the point's month, both types summed regardless of the type
// filter.
func Trend(rows []Row, filter Filter, compareYears []int, now types.Period) []TrendPoint {
	if len(compareYears) > 0 {
		return compareYearsTrend(rows, filter, compareYears, now)
	}

	rows = filter.Apply(rows)

	points := make([]TrendPoint, 0)
	for _, period := range types.PeriodRange(filter.From, filter.To) {
		if period.After(now) {
			continue
		}

		point := TrendPoint{
			Label:     period.Label(),
			FullLabel: period.FullLabel(),
			Values:    make(map[string]decimal.Decimal),
		}

		act, budget := decimal.Zero, decimal.Zero
		for _, row := range rows {
			if !row.Period.Equal(period) {
				continue
			}
			if row.spesaType() == models.SpesaTypeACT {
				act = act.Add(row.Amount)
			} else {
				budget = budget.Add(row.Amount)
			}
		}

		switch {
		case filter.Dual():
			point.Values[string(models.SpesaTypeACT)] = act
			point.Values[string(models.SpesaTypeBUDGET)] = budget
		case filter.Type == models.SpesaTypeBUDGET:
			point.Values[string(models.SpesaTypeBUDGET)] = budget
		default:
			point.Values[string(models.SpesaTypeACT)] = act
		}

		points = append(points, point)
	}

	return points
}

// compareYearsTrend keeps the periods of the filter range as the axis and
// lines the comparison years up on it, so the same month of different
// years lands in the same point. The classification filters apply, the
// type and period clauses do not: every year series sums both types over
// the full compared years.
func compareYearsTrend(rows []Row, filter Filter, compareYears []int, now types.Period) []TrendPoint {
	scope := filter
	scope.Type = ""
	scope.From = types.NewPeriod(slices.Min(compareYears), 1)
	scope.To = types.NewPeriod(slices.Max(compareYears), 12)
	rows = scope.Apply(rows)

	points := make([]TrendPoint, 0)
	for _, period := range types.PeriodRange(filter.From, filter.To) {
		if period.After(now) {
			continue
		}

		point := TrendPoint{
			Label:     period.Label(),
			FullLabel: period.FullLabel(),
			Values:    make(map[string]decimal.Decimal, len(compareYears)),
		}

		for _, year := range compareYears {
			sum := decimal.Zero
			for _, row := range rows {
				if row.Period.Year() == year && row.Period.Month() == period.Month() {
					sum = sum.Add(row.Amount)
				}
			}
			point.Values[CompareYearKey(year)] = sum
		}

		points = append(points, point)
	}

	return points
}
