package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/ledgera/backend/internal/controllers/v1"
	"github.com/ledgera/backend/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestVoce(t *testing.T, editable v1.VoceEditable, expectedStatus ...int) v1.VoceResponse {
	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.VoceEditable{editable}

	r := test.Request(t, testRouter, http.MethodPost, "http://example.com/v1/voci", body)
	test.AssertHTTPStatus(t, expectedStatus[0], &r)

	var response v1.VoceCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.VoceResponse{}
}

// TestVociDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestVociDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestVoce(t, v1.VoceEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, testRouter, http.MethodGet, "http://example.com/v1/voci", "")
				test.AssertHTTPStatus(t, http.StatusInternalServerError, &recorder)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestVociOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestVociOptions() {
	tests := []struct {
		name   string
		id     string // path at the voci endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Voce with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Voce exists", createTestVoce(suite.T(), v1.VoceEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/voci", tt.id)
			r := test.Request(t, testRouter, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, tt.status, &r)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestVociGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestVociGetSingle() {
	voce := createTestVoce(suite.T(), v1.VoceEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Voce", voce.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Voce with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, tt.method, fmt.Sprintf("http://example.com/v1/voci/%s", tt.id), "")

			var response v1.VoceResponse
			test.DecodeResponse(t, &r, &response)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestVociGetFilter() {
	_ = createTestVoce(suite.T(), v1.VoceEditable{Name: "Case", SortOrder: 1})
	_ = createTestVoce(suite.T(), v1.VoceEditable{Name: "Utenze", SortOrder: 2})
	_ = createTestVoce(suite.T(), v1.VoceEditable{Name: "Tempo libero", SortOrder: 3, Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Fuzzy name", "name=se", 1},
		{"Search", "search=TEMPO", 1},
		{"Archived", "archived=true", 1},
		{"Not archived", "archived=false", 2},
		{"Offset", "offset=2", 1},
		{"Limit", "limit=2", 2},
		{"Limit 0", "limit=0", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.VoceListResponse
			r := test.Request(t, testRouter, http.MethodGet, fmt.Sprintf("http://example.com/v1/voci?%s", tt.query), "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data))
		})
	}
}

// TestVociGetSorted verifies that voci are sorted by their sort order
// before their name.
func (suite *TestSuiteStandard) TestVociGetSorted() {
	_ = createTestVoce(suite.T(), v1.VoceEditable{Name: "Zebra", SortOrder: 1})
	_ = createTestVoce(suite.T(), v1.VoceEditable{Name: "Alfa", SortOrder: 2})
	_ = createTestVoce(suite.T(), v1.VoceEditable{Name: "Beta", SortOrder: 2})

	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/voci", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.VoceListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3, "Voce list has wrong length")
	assert.Equal(suite.T(), "Zebra", response.Data[0].Name)
	assert.Equal(suite.T(), "Alfa", response.Data[1].Name)
	assert.Equal(suite.T(), "Beta", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestVociCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int // expected HTTP status
	}{
		{"Broken Body", `[{ "name": 2 }]`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, http.MethodPost, "http://example.com/v1/voci", tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

// Verify that updating voci works as desired
func (suite *TestSuiteStandard) TestVociUpdate() {
	voce := createTestVoce(suite.T(), v1.VoceEditable{Name: "Nome iniziale"})

	tests := []struct {
		name     string
		body     map[string]any                        // the updates to perform. This is not a struct because that would set all fields on the request
		testFunc func(t *testing.T, v v1.VoceResponse) // tests to perform against the updated voce resource
	}{
		{
			"Name",
			map[string]any{"name": "Nome aggiornato"},
			func(t *testing.T, v v1.VoceResponse) {
				assert.Equal(t, "Nome aggiornato", v.Data.Name)
			},
		},
		{
			"Archived",
			map[string]any{"archived": true},
			func(t *testing.T, v v1.VoceResponse) {
				assert.True(t, v.Data.Archived)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, http.MethodPatch, voce.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.VoceResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

// TestVociDelete verifies all cases for voce deletions.
func (suite *TestSuiteStandard) TestVociDelete() {
	tests := []struct {
		name   string
		id     string
		status int // expected response status
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing Voce", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				voce := createTestVoce(t, v1.VoceEditable{})
				tt.id = voce.Data.ID.String()
			}

			recorder = test.Request(t, testRouter, http.MethodDelete, fmt.Sprintf("http://example.com/v1/voci/%s", tt.id), "")
			test.AssertHTTPStatus(t, tt.status, &recorder)
		})
	}
}

func (suite *TestSuiteStandard) TestVociPagination() {
	for i := 0; i < 10; i++ {
		createTestVoce(suite.T(), v1.VoceEditable{Name: fmt.Sprint(i)})
	}

	tests := []struct {
		name          string
		offset        uint
		limit         int
		expectedCount int
		expectedTotal int64
	}{
		{"All", 0, -1, 10, 10},
		{"First 5", 0, 5, 5, 10},
		{"Last 5", 5, -1, 5, 10},
		{"Offset 3", 3, -1, 7, 10},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, http.MethodGet, fmt.Sprintf("http://example.com/v1/voci?offset=%d&limit=%d", tt.offset, tt.limit), "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.VoceListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.offset, response.Pagination.Offset)
			assert.Equal(t, tt.limit, response.Pagination.Limit)
			assert.Equal(t, tt.expectedCount, response.Pagination.Count)
			assert.Equal(t, tt.expectedTotal, response.Pagination.Total)
		})
	}
}
