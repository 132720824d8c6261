package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/reporting"
	"github.com/ledgera/backend/internal/types"
	"golang.org/x/exp/slices"
)

// ReportQueryFilter is the shared query surface of the report endpoints.
// Which fields are required depends on the endpoint: the period range for
// trend, breakdown and summary table, the two periods for the comparison.
type ReportQueryFilter struct {
	From           string `form:"from"`         // First period of the range (YYYY-MM)
	To             string `form:"to"`           // Last period of the range, inclusive (YYYY-MM)
	VoceID         string `form:"voce"`         // Restrict to one voce
	CategoriaID    string `form:"categoria"`    // Restrict to one categoria
	SubCategoriaID string `form:"subCategoria"` // Restrict to one sub-categoria
	Type           string `form:"type"`         // ACT or BUDGET. Empty reports both side by side
	CompareYears   []int  `form:"compareYears"` // Years to compare over the range, both types summed (trend only)
	Period1        string `form:"period1"`      // First period of the comparison (YYYY-MM)
	Period2        string `form:"period2"`      // Second period of the comparison (YYYY-MM)
}

// filter converts the bound query into a reporting filter. The period
// range is left zero when from/to are not set, callers decide whether
// that is an error or has a default.
func (f ReportQueryFilter) filter() (reporting.Filter, error) {
	var filter reporting.Filter
	var err error

	if f.From != "" {
		filter.From, err = types.ParsePeriod(f.From)
		if err != nil {
			return reporting.Filter{}, err
		}
	}

	if f.To != "" {
		filter.To, err = types.ParsePeriod(f.To)
		if err != nil {
			return reporting.Filter{}, err
		}
	}

	filter.VoceID, err = httputil.UUIDFromString(f.VoceID)
	if err != nil {
		return reporting.Filter{}, err
	}

	filter.CategoriaID, err = httputil.UUIDFromString(f.CategoriaID)
	if err != nil {
		return reporting.Filter{}, err
	}

	filter.SubCategoriaID, err = httputil.UUIDFromString(f.SubCategoriaID)
	if err != nil {
		return reporting.Filter{}, err
	}

	if f.Type != "" {
		filter.Type, err = models.ParseSpesaType(f.Type)
		if err != nil {
			return reporting.Filter{}, err
		}
	}

	return filter, nil
}

type TrendReportData struct {
	Keys   []string               `json:"keys"`   // Series keys in display order
	Points []reporting.TrendPoint `json:"points"` // One point per period
}

type TrendReportResponse struct {
	Data  *TrendReportData `json:"data"`                                                 // The trend report
	Error *string          `json:"error" example:"the from and to query parameters must be set"` // The error, if any occurred
}

type BreakdownReportData struct {
	Keys   []string                   `json:"keys"`   // Series keys in display order
	Points []reporting.BreakdownPoint `json:"points"` // One point per period
}

type BreakdownReportResponse struct {
	Data  *BreakdownReportData `json:"data"`                                                 // The breakdown report
	Error *string              `json:"error" example:"the from and to query parameters must be set"` // The error, if any occurred
}

type ComparisonReportData struct {
	Keys []string                  `json:"keys"` // Column keys in display order
	Rows []reporting.ComparisonRow `json:"rows"` // One row per categoria with spend in either period
}

type ComparisonReportResponse struct {
	Data  *ComparisonReportData `json:"data"`                                                           // The comparison report
	Error *string               `json:"error" example:"the period1 and period2 query parameters must be set"` // The error, if any occurred
}

type SummaryTableResponse struct {
	Data  *reporting.PivotTable `json:"data"`                                                 // The voce/categoria summary table
	Error *string               `json:"error" example:"the from and to query parameters must be set"` // The error, if any occurred
}

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/trend", OptionsReport)
	r.GET("/trend", GetTrendReport)
	r.OPTIONS("/breakdown", OptionsReport)
	r.GET("/breakdown", GetBreakdownReport)
	r.OPTIONS("/comparison", OptionsReport)
	r.GET("/comparison", GetComparisonReport)
	r.OPTIONS("/summary-table", OptionsReport)
	r.GET("/summary-table", GetSummaryTable)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/trend [options]
func OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Trend report
// @Description	Returns the spend per period over the requested range, one series per type. With compareYears every requested year becomes a series over the same range, summing both types. Periods after the current month are excluded.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	TrendReportResponse
// @Failure		400	{object}	TrendReportResponse
// @Failure		500	{object}	TrendReportResponse
// @Router			/v1/reports/trend [get]
// @Param			from			query	string	true	"First period of the range (YYYY-MM)"
// @Param			to				query	string	true	"Last period of the range (YYYY-MM)"
// @Param			voce			query	string	false	"Restrict to one voce"
// @Param			categoria		query	string	false	"Restrict to one categoria"
// @Param			subCategoria	query	string	false	"Restrict to one sub-categoria"
// @Param			type			query	string	false	"ACT or BUDGET. Empty reports both side by side"
// @Param			compareYears	query	[]int	false	"Years to compare over the range, both types summed"	collectionFormat(multi)
func GetTrendReport(c *gin.Context) {
	var query ReportQueryFilter
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TrendReportResponse{
			Error: &s,
		})
		return
	}

	filter, err := query.filter()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TrendReportResponse{
			Error: &s,
		})
		return
	}

	if query.From == "" || query.To == "" {
		s := errPeriodRangeRequired.Error()
		c.JSON(http.StatusBadRequest, TrendReportResponse{
			Error: &s,
		})
		return
	}

	// With comparison years the load covers the full span of the years,
	// the filter range stays the axis
	loadFrom, loadTo := filter.From, filter.To
	if len(query.CompareYears) > 0 {
		loadFrom = types.NewPeriod(slices.Min(query.CompareYears), 1)
		loadTo = types.NewPeriod(slices.Max(query.CompareYears), 12)
	}

	rows, err := reporting.Load(models.DB, loadFrom, loadTo)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TrendReportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TrendReportResponse{Data: &TrendReportData{
		Keys:   reporting.TrendKeys(filter, query.CompareYears),
		Points: reporting.Trend(rows, filter, query.CompareYears, types.PeriodOf(time.Now())),
	}})
}

// @Summary		Breakdown report
// @Description	Returns the spend per period and categoria over the requested range, future periods included
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	BreakdownReportResponse
// @Failure		400	{object}	BreakdownReportResponse
// @Failure		500	{object}	BreakdownReportResponse
// @Router			/v1/reports/breakdown [get]
// @Param			from			query	string	true	"First period of the range (YYYY-MM)"
// @Param			to				query	string	true	"Last period of the range (YYYY-MM)"
// @Param			voce			query	string	false	"Restrict to one voce"
// @Param			categoria		query	string	false	"Restrict to one categoria"
// @Param			subCategoria	query	string	false	"Restrict to one sub-categoria"
// @Param			type			query	string	false	"ACT or BUDGET. Empty reports both side by side"
func GetBreakdownReport(c *gin.Context) {
	var query ReportQueryFilter
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BreakdownReportResponse{
			Error: &s,
		})
		return
	}

	if query.From == "" || query.To == "" {
		s := errPeriodRangeRequired.Error()
		c.JSON(http.StatusBadRequest, BreakdownReportResponse{
			Error: &s,
		})
		return
	}

	filter, err := query.filter()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BreakdownReportResponse{
			Error: &s,
		})
		return
	}

	rows, err := reporting.Load(models.DB, filter.From, filter.To)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BreakdownReportResponse{
			Error: &s,
		})
		return
	}

	points, keys := reporting.Breakdown(rows, filter)
	c.JSON(http.StatusOK, BreakdownReportResponse{Data: &BreakdownReportData{
		Keys:   keys,
		Points: points,
	}})
}

// @Summary		Comparison report
// @Description	Compares the spend per categoria between two periods. Categorie without spend in either period are dropped.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ComparisonReportResponse
// @Failure		400	{object}	ComparisonReportResponse
// @Failure		500	{object}	ComparisonReportResponse
// @Router			/v1/reports/comparison [get]
// @Param			period1			query	string	true	"First period of the comparison (YYYY-MM)"
// @Param			period2			query	string	true	"Second period of the comparison (YYYY-MM)"
// @Param			voce			query	string	false	"Restrict to one voce"
// @Param			categoria		query	string	false	"Restrict to one categoria"
// @Param			subCategoria	query	string	false	"Restrict to one sub-categoria"
// @Param			type			query	string	false	"ACT or BUDGET. Empty reports both side by side"
func GetComparisonReport(c *gin.Context) {
	var query ReportQueryFilter
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ComparisonReportResponse{
			Error: &s,
		})
		return
	}

	if query.Period1 == "" || query.Period2 == "" {
		s := errComparisonPeriods.Error()
		c.JSON(http.StatusBadRequest, ComparisonReportResponse{
			Error: &s,
		})
		return
	}

	p1, err := types.ParsePeriod(query.Period1)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ComparisonReportResponse{
			Error: &s,
		})
		return
	}

	p2, err := types.ParsePeriod(query.Period2)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ComparisonReportResponse{
			Error: &s,
		})
		return
	}

	filter, err := query.filter()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComparisonReportResponse{
			Error: &s,
		})
		return
	}

	// The range defaults to exactly the two compared periods
	if query.From == "" {
		filter.From = p1
		if p2.Before(p1) {
			filter.From = p2
		}
	}
	if query.To == "" {
		filter.To = p2
		if p1.After(p2) {
			filter.To = p1
		}
	}

	rows, err := reporting.Load(models.DB, filter.From, filter.To)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComparisonReportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ComparisonReportResponse{Data: &ComparisonReportData{
		Keys: reporting.ComparisonKeys(filter, p1, p2),
		Rows: reporting.Comparison(rows, filter, p1, p2),
	}})
}

// @Summary		Summary table
// @Description	Returns the voce/categoria pivot table over the requested range with one column per period and footer totals
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	SummaryTableResponse
// @Failure		400	{object}	SummaryTableResponse
// @Failure		500	{object}	SummaryTableResponse
// @Router			/v1/reports/summary-table [get]
// @Param			from			query	string	true	"First period of the range (YYYY-MM)"
// @Param			to				query	string	true	"Last period of the range (YYYY-MM)"
// @Param			voce			query	string	false	"Restrict to one voce"
// @Param			categoria		query	string	false	"Restrict to one categoria"
// @Param			subCategoria	query	string	false	"Restrict to one sub-categoria"
// @Param			type			query	string	false	"ACT or BUDGET. Empty reports both side by side"
func GetSummaryTable(c *gin.Context) {
	var query ReportQueryFilter
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SummaryTableResponse{
			Error: &s,
		})
		return
	}

	if query.From == "" || query.To == "" {
		s := errPeriodRangeRequired.Error()
		c.JSON(http.StatusBadRequest, SummaryTableResponse{
			Error: &s,
		})
		return
	}

	filter, err := query.filter()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryTableResponse{
			Error: &s,
		})
		return
	}

	rows, err := reporting.Load(models.DB, filter.From, filter.To)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryTableResponse{
			Error: &s,
		})
		return
	}

	table := reporting.Pivot(rows, filter)
	c.JSON(http.StatusOK, SummaryTableResponse{Data: &table})
}
