package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/ledgera/backend/internal/controllers/v1"
	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/test"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupReportData creates one ACT spesa of 100 over January and February
// 2025 and one BUDGET spesa of 80 in January 2025.
func setupReportData(t *testing.T) {
	categoria := createTestCategoria(t, v1.CategoriaEditable{Name: "Condominio"})

	_ = createTestSpesa(t, v1.SpesaEditable{
		Description:  "Condominio gennaio-febbraio",
		DocumentDate: types.NewPeriod(2025, 1),
		TotalAmount:  decimal.NewFromInt(100),
		PeriodFrom:   types.NewPeriod(2025, 1),
		PeriodTo:     types.NewPeriod(2025, 2),
		VoceID:       categoria.Data.VoceID,
		CategoriaID:  categoria.Data.ID,
	})

	_ = createTestSpesa(t, v1.SpesaEditable{
		Description:  "Previsione gennaio",
		DocumentDate: types.NewPeriod(2025, 1),
		TotalAmount:  decimal.NewFromInt(80),
		Type:         models.SpesaTypeBUDGET,
		VoceID:       categoria.Data.VoceID,
		CategoriaID:  categoria.Data.ID,
	})
}

func (suite *TestSuiteStandard) TestTrendReport() {
	setupReportData(suite.T())

	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/reports/trend?from=2025-01&to=2025-02", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TrendReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), []string{"ACT", "BUDGET"}, response.Data.Keys)
	require.Len(suite.T(), response.Data.Points, 2)

	january := response.Data.Points[0]
	assert.Equal(suite.T(), "Gen 25", january.Label)
	assert.True(suite.T(), january.Values["ACT"].Equal(decimal.NewFromInt(50)), "January ACT is %s", january.Values["ACT"])
	assert.True(suite.T(), january.Values["BUDGET"].Equal(decimal.NewFromInt(80)), "January BUDGET is %s", january.Values["BUDGET"])

	february := response.Data.Points[1]
	assert.True(suite.T(), february.Values["ACT"].Equal(decimal.NewFromInt(50)))
	assert.True(suite.T(), february.Values["BUDGET"].IsZero())
}

func (suite *TestSuiteStandard) TestTrendReportTypeFilter() {
	setupReportData(suite.T())

	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/reports/trend?from=2025-01&to=2025-02&type=BUDGET", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TrendReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), []string{"BUDGET"}, response.Data.Keys)
	require.Len(suite.T(), response.Data.Points, 2)
	assert.True(suite.T(), response.Data.Points[0].Values["BUDGET"].Equal(decimal.NewFromInt(80)))
}

func (suite *TestSuiteStandard) TestTrendReportCompareYears() {
	setupReportData(suite.T())

	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/reports/trend?from=2025-01&to=2025-02&compareYears=2024&compareYears=2025&type=ACT", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.TrendReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), []string{"anno_2024", "anno_2025"}, response.Data.Keys)
	require.Len(suite.T(), response.Data.Points, 2)

	january := response.Data.Points[0]
	assert.Equal(suite.T(), "Gen 25", january.Label)
	assert.True(suite.T(), january.Values["anno_2024"].IsZero())
	assert.True(suite.T(), january.Values["anno_2025"].Equal(decimal.NewFromInt(130)), "January 2025 must sum both types, got %s", january.Values["anno_2025"])

	february := response.Data.Points[1]
	assert.True(suite.T(), february.Values["anno_2025"].Equal(decimal.NewFromInt(50)))
}

func (suite *TestSuiteStandard) TestReportsRangeRequired() {
	tests := []struct {
		name string
		url  string
	}{
		{"Trend", "http://example.com/v1/reports/trend"},
		{"Trend from only", "http://example.com/v1/reports/trend?from=2025-01"},
		{"Trend compare years only", "http://example.com/v1/reports/trend?compareYears=2025"},
		{"Breakdown", "http://example.com/v1/reports/breakdown"},
		{"Summary table", "http://example.com/v1/reports/summary-table"},
		{"Comparison", "http://example.com/v1/reports/comparison?period1=2025-01"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestReportsInvalidParameters() {
	tests := []struct {
		name string
		url  string
	}{
		{"Bad period", "http://example.com/v1/reports/trend?from=notaperiod&to=2025-02"},
		{"Bad voce", "http://example.com/v1/reports/breakdown?from=2025-01&to=2025-02&voce=notaUUID"},
		{"Bad type", "http://example.com/v1/reports/summary-table?from=2025-01&to=2025-02&type=WRONG"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestBreakdownReport() {
	setupReportData(suite.T())

	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/reports/breakdown?from=2025-01&to=2025-02&type=ACT", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BreakdownReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	require.Len(suite.T(), response.Data.Points, 2)
	assert.NotEmpty(suite.T(), response.Data.Keys)
}

func (suite *TestSuiteStandard) TestComparisonReport() {
	setupReportData(suite.T())

	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/reports/comparison?period1=2025-01&period2=2025-02&type=ACT", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.ComparisonReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	require.Len(suite.T(), response.Data.Rows, 1)
	assert.Equal(suite.T(), "Condominio", response.Data.Rows[0].Categoria)
}

func (suite *TestSuiteStandard) TestSummaryTable() {
	setupReportData(suite.T())

	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/reports/summary-table?from=2025-01&to=2025-02", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.SummaryTableResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestReportsOptions() {
	for _, path := range []string{"trend", "breakdown", "comparison", "summary-table"} {
		r := test.Request(suite.T(), testRouter, http.MethodOptions, "http://example.com/v1/reports/"+path, "")
		test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	}
}
