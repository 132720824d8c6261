package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/ledgera/backend/internal/controllers/v1"
	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/test"
	"github.com/ledgera/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSpesa(t *testing.T, editable v1.SpesaEditable, expectedStatus ...int) v1.SpesaResponse {
	if editable.VoceID == uuid.Nil && len(editable.Righe) == 0 {
		categoria := createTestCategoria(t, v1.CategoriaEditable{})
		editable.VoceID = categoria.Data.VoceID
		editable.CategoriaID = categoria.Data.ID
	}

	if editable.DocumentDate.IsZero() {
		editable.DocumentDate = types.NewPeriod(2025, 1)
	}

	if editable.TotalAmount.IsZero() {
		editable.TotalAmount = decimal.NewFromInt(150)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.SpesaEditable{editable}

	r := test.Request(t, testRouter, http.MethodPost, "http://example.com/v1/spese", body)
	test.AssertHTTPStatus(t, expectedStatus[0], &r)

	var response v1.SpesaCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.SpesaResponse{}
}

// TestSpeseCreateGeneratesRighe verifies that a spesa without explicit
// righe gets one generated riga per reference period, with the cent
// remainder on the last one.
func (suite *TestSuiteStandard) TestSpeseCreateGeneratesRighe() {
	categoria := createTestCategoria(suite.T(), v1.CategoriaEditable{})

	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{
		DocumentDate: types.NewPeriod(2025, 1),
		TotalAmount:  decimal.NewFromInt(100),
		PeriodFrom:   types.NewPeriod(2025, 1),
		PeriodTo:     types.NewPeriod(2025, 3),
		VoceID:       categoria.Data.VoceID,
		CategoriaID:  categoria.Data.ID,
	})

	require.Len(suite.T(), spesa.Data.Righe, 3)

	assert.True(suite.T(), spesa.Data.Righe[0].Amount.Equal(decimal.RequireFromString("33.33")), "First riga is %s", spesa.Data.Righe[0].Amount)
	assert.True(suite.T(), spesa.Data.Righe[1].Amount.Equal(decimal.RequireFromString("33.33")), "Second riga is %s", spesa.Data.Righe[1].Amount)
	assert.True(suite.T(), spesa.Data.Righe[2].Amount.Equal(decimal.RequireFromString("33.34")), "Third riga is %s", spesa.Data.Righe[2].Amount)

	assert.True(suite.T(), spesa.Data.Righe[0].Period.Equal(types.NewPeriod(2025, 1)))
	assert.True(suite.T(), spesa.Data.Righe[2].Period.Equal(types.NewPeriod(2025, 3)))

	for _, riga := range spesa.Data.Righe {
		assert.Equal(suite.T(), categoria.Data.VoceID, riga.VoceID)
		assert.Equal(suite.T(), categoria.Data.ID, riga.CategoriaID)
	}
}

// TestSpeseCreateDefaultsPeriods verifies that the reference range defaults
// to the document date.
func (suite *TestSuiteStandard) TestSpeseCreateDefaultsPeriods() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{
		DocumentDate: types.NewPeriod(2025, 4),
		TotalAmount:  decimal.NewFromInt(80),
	})

	assert.True(suite.T(), spesa.Data.PeriodFrom.Equal(types.NewPeriod(2025, 4)))
	assert.True(suite.T(), spesa.Data.PeriodTo.Equal(types.NewPeriod(2025, 4)))

	require.Len(suite.T(), spesa.Data.Righe, 1)
	assert.True(suite.T(), spesa.Data.Righe[0].Amount.Equal(decimal.NewFromInt(80)))
}

// TestSpeseCreateExplicitRighe verifies that explicit righe are stored as
// sent and inherit the spesa level classification.
func (suite *TestSuiteStandard) TestSpeseCreateExplicitRighe() {
	categoria := createTestCategoria(suite.T(), v1.CategoriaEditable{})

	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{
		DocumentDate: types.NewPeriod(2025, 1),
		TotalAmount:  decimal.NewFromInt(150),
		PeriodFrom:   types.NewPeriod(2025, 1),
		PeriodTo:     types.NewPeriod(2025, 2),
		VoceID:       categoria.Data.VoceID,
		CategoriaID:  categoria.Data.ID,
		Righe: []v1.RigaEditable{
			{Period: types.NewPeriod(2025, 1), Amount: decimal.NewFromInt(100)},
			{Period: types.NewPeriod(2025, 2), Amount: decimal.NewFromInt(50)},
		},
	})

	require.Len(suite.T(), spesa.Data.Righe, 2)
	assert.True(suite.T(), spesa.Data.Righe[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), spesa.Data.Righe[1].Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(suite.T(), categoria.Data.VoceID, spesa.Data.Righe[0].VoceID)
}

func (suite *TestSuiteStandard) TestSpeseCreateFails() {
	categoria := createTestCategoria(suite.T(), v1.CategoriaEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken Body", `[{ "description": 2 }]`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{
			"No classification and no righe",
			[]v1.SpesaEditable{{
				DocumentDate: types.NewPeriod(2025, 1),
				TotalAmount:  decimal.NewFromInt(100),
			}},
			http.StatusBadRequest,
		},
		{
			"Righe sum mismatch",
			[]v1.SpesaEditable{{
				DocumentDate: types.NewPeriod(2025, 1),
				TotalAmount:  decimal.NewFromInt(100),
				VoceID:       categoria.Data.VoceID,
				CategoriaID:  categoria.Data.ID,
				Righe: []v1.RigaEditable{
					{Period: types.NewPeriod(2025, 1), Amount: decimal.NewFromInt(60)},
				},
			}},
			http.StatusBadRequest,
		},
		{
			"Riga outside range",
			[]v1.SpesaEditable{{
				DocumentDate: types.NewPeriod(2025, 1),
				TotalAmount:  decimal.NewFromInt(100),
				PeriodFrom:   types.NewPeriod(2025, 1),
				PeriodTo:     types.NewPeriod(2025, 1),
				VoceID:       categoria.Data.VoceID,
				CategoriaID:  categoria.Data.ID,
				Righe: []v1.RigaEditable{
					{Period: types.NewPeriod(2025, 6), Amount: decimal.NewFromInt(100)},
				},
			}},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, http.MethodPost, "http://example.com/v1/spese", tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestSpeseGetSingle() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing Spesa", spesa.Data.ID.String(), http.StatusOK},
		{"No Spesa with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, http.MethodGet, fmt.Sprintf("http://example.com/v1/spese/%s", tt.id), "")
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

// TestSpeseUpdate verifies the three update modes: column-only updates keep
// the righe, a total change regenerates them, keepRighe keeps a hand
// adjusted split alive.
func (suite *TestSuiteStandard) TestSpeseUpdate() {
	tests := []struct {
		name     string
		body     map[string]any
		testFunc func(t *testing.T, s v1.SpesaResponse)
	}{
		{
			"Description only",
			map[string]any{"description": "Aggiornata"},
			func(t *testing.T, s v1.SpesaResponse) {
				assert.Equal(t, "Aggiornata", s.Data.Description)
				require.Len(t, s.Data.Righe, 2)
				assert.True(t, s.Data.Righe[0].Amount.Equal(decimal.NewFromInt(75)))
			},
		},
		{
			"Total change regenerates righe",
			map[string]any{"totalAmount": "300"},
			func(t *testing.T, s v1.SpesaResponse) {
				require.Len(t, s.Data.Righe, 2)
				assert.True(t, s.Data.Righe[0].Amount.Equal(decimal.NewFromInt(150)))
				assert.True(t, s.Data.Righe[1].Amount.Equal(decimal.NewFromInt(150)))
			},
		},
		{
			"keepRighe keeps the split",
			map[string]any{"keepRighe": true, "note": "non toccare le righe"},
			func(t *testing.T, s v1.SpesaResponse) {
				assert.Equal(t, "non toccare le righe", s.Data.Note)
				require.Len(t, s.Data.Righe, 2)
				assert.True(t, s.Data.Righe[0].Amount.Equal(decimal.NewFromInt(75)))
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			spesa := createTestSpesa(t, v1.SpesaEditable{
				DocumentDate: types.NewPeriod(2025, 1),
				TotalAmount:  decimal.NewFromInt(150),
				PeriodFrom:   types.NewPeriod(2025, 1),
				PeriodTo:     types.NewPeriod(2025, 2),
			})

			r := test.Request(t, testRouter, http.MethodPatch, spesa.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.SpesaResponse
			test.DecodeResponse(t, &r, &response)

			tt.testFunc(t, response)
		})
	}
}

// A kept split that no longer matches the new total must be rejected.
func (suite *TestSuiteStandard) TestSpeseUpdateKeepRigheMismatch() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{
		DocumentDate: types.NewPeriod(2025, 1),
		TotalAmount:  decimal.NewFromInt(150),
		PeriodFrom:   types.NewPeriod(2025, 1),
		PeriodTo:     types.NewPeriod(2025, 2),
	})

	r := test.Request(suite.T(), testRouter, http.MethodPatch, spesa.Data.Links.Self, map[string]any{
		"keepRighe":   true,
		"totalAmount": "500",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestSpeseUpdateExplicitRighe() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{
		DocumentDate: types.NewPeriod(2025, 1),
		TotalAmount:  decimal.NewFromInt(150),
		PeriodFrom:   types.NewPeriod(2025, 1),
		PeriodTo:     types.NewPeriod(2025, 2),
	})

	r := test.Request(suite.T(), testRouter, http.MethodPatch, spesa.Data.Links.Self, map[string]any{
		"righe": []map[string]any{
			{"period": "2025-01", "amount": "30"},
			{"period": "2025-02", "amount": "120"},
		},
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.SpesaResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data.Righe, 2)
	assert.True(suite.T(), response.Data.Righe[0].Amount.Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), response.Data.Righe[1].Amount.Equal(decimal.NewFromInt(120)))

	// The classification is carried over from the stored righe
	assert.Equal(suite.T(), spesa.Data.Righe[0].VoceID, response.Data.Righe[0].VoceID)
}

func (suite *TestSuiteStandard) TestSpeseDelete() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{})

	r := test.Request(suite.T(), testRouter, http.MethodDelete, spesa.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), testRouter, http.MethodGet, spesa.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

// TestSpeseDeleteBulk verifies that the bulk delete reports a result per
// requested ID and keeps going past failures.
func (suite *TestSuiteStandard) TestSpeseDeleteBulk() {
	spesa1 := createTestSpesa(suite.T(), v1.SpesaEditable{})
	spesa2 := createTestSpesa(suite.T(), v1.SpesaEditable{})
	missing := uuid.New()

	r := test.Request(suite.T(), testRouter, http.MethodDelete, "http://example.com/v1/spese", v1.SpesaDeleteRequest{
		IDs: []uuid.UUID{spesa1.Data.ID, missing, spesa2.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	var response v1.SpesaDeleteResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Nil(suite.T(), response.Data[0].Error)
	assert.NotNil(suite.T(), response.Data[1].Error)
	assert.Nil(suite.T(), response.Data[2].Error)

	// Both existing spese are gone
	list := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/spese", "")
	var listResponse v1.SpesaListResponse
	test.DecodeResponse(suite.T(), &list, &listResponse)
	assert.Len(suite.T(), listResponse.Data, 0)
}

func (suite *TestSuiteStandard) TestSpeseDeleteBulkEmpty() {
	r := test.Request(suite.T(), testRouter, http.MethodDelete, "http://example.com/v1/spese", v1.SpesaDeleteRequest{})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestSpeseGetFilter() {
	categoriaA := createTestCategoria(suite.T(), v1.CategoriaEditable{Name: "Condominio"})
	categoriaB := createTestCategoria(suite.T(), v1.CategoriaEditable{Name: "Elettricità"})
	fornitore := createTestFornitore(suite.T(), v1.FornitoreEditable{Name: "Enel"})

	_ = createTestSpesa(suite.T(), v1.SpesaEditable{
		Description:   "Condominio gennaio",
		InvoiceNumber: "F-2025-001",
		DocumentDate:  types.NewPeriod(2025, 1),
		TotalAmount:   decimal.NewFromInt(150),
		PeriodFrom:    types.NewPeriod(2025, 1),
		PeriodTo:      types.NewPeriod(2025, 2),
		FornitoreID:   &fornitore.Data.ID,
		VoceID:        categoriaA.Data.VoceID,
		CategoriaID:   categoriaA.Data.ID,
	})

	_ = createTestSpesa(suite.T(), v1.SpesaEditable{
		Description:  "Bolletta luce",
		DocumentDate: types.NewPeriod(2025, 3),
		TotalAmount:  decimal.NewFromInt(90),
		VoceID:       categoriaB.Data.VoceID,
		CategoriaID:  categoriaB.Data.ID,
	})

	_ = createTestSpesa(suite.T(), v1.SpesaEditable{
		Description:  "Previsione manutenzione",
		DocumentDate: types.NewPeriod(2025, 5),
		TotalAmount:  decimal.NewFromInt(200),
		Type:         models.SpesaTypeBUDGET,
		VoceID:       categoriaB.Data.VoceID,
		CategoriaID:  categoriaB.Data.ID,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Type BUDGET", "type=BUDGET", 1},
		{"Type ACT", "type=ACT", 2},
		{"Fornitore", fmt.Sprintf("fornitore=%s", fornitore.Data.ID), 1},
		{"Voce A", fmt.Sprintf("voce=%s", categoriaA.Data.VoceID), 1},
		{"Categoria B", fmt.Sprintf("categoria=%s", categoriaB.Data.ID), 2},
		{"From", "from=2025-03", 2},
		{"To", "to=2025-02", 1},
		{"Range", "from=2025-02&to=2025-03", 2},
		{"Description", "description=Condominio", 1},
		{"Invoice number", "invoiceNumber=F-2025-001", 1},
		{"Search plain text", "search=bolletta", 1},
		{"Search glob", "search=*luce", 1},
		{"Search no match", "search=benzina", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.SpesaListResponse
			r := test.Request(t, testRouter, http.MethodGet, fmt.Sprintf("http://example.com/v1/spese?%s", tt.query), "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data), "Query: %s", tt.query)
		})
	}
}

// TestSpeseDeleteCascades verifies that deleting a spesa deletes its righe.
func (suite *TestSuiteStandard) TestSpeseDeleteCascades() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{
		PeriodFrom: types.NewPeriod(2025, 1),
		PeriodTo:   types.NewPeriod(2025, 3),
	})

	r := test.Request(suite.T(), testRouter, http.MethodDelete, spesa.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.RigaSpesa{}).Where("spesa_id = ?", spesa.Data.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestSpeseOptions() {
	r := test.Request(suite.T(), testRouter, http.MethodOptions, "http://example.com/v1/spese", "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	assert.Equal(suite.T(), "OPTIONS, GET, POST, DELETE", r.Header().Get("allow"))
}
