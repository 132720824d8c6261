package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/ledgera/backend/internal/controllers/v1"
	"github.com/ledgera/backend/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestCategoria(t *testing.T, editable v1.CategoriaEditable, expectedStatus ...int) v1.CategoriaResponse {
	if editable.VoceID == uuid.Nil {
		editable.VoceID = createTestVoce(t, v1.VoceEditable{}).Data.ID
	}

	if editable.Name == "" {
		editable.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.CategoriaEditable{editable}

	r := test.Request(t, testRouter, http.MethodPost, "http://example.com/v1/categorie", body)
	test.AssertHTTPStatus(t, expectedStatus[0], &r)

	var response v1.CategoriaCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.CategoriaResponse{}
}

// TestCategorieOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategorieOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Categoria with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Categoria exists", createTestCategoria(suite.T(), v1.CategoriaEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/categorie", tt.id)
			r := test.Request(t, testRouter, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestCategorieCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken Body", `[{ "name": 2 }]`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{"Non-existing Voce", `[{ "name": "Senza voce", "voceId": "ea85ad1a-3679-4ced-b83b-89566c12ece9" }]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, testRouter, http.MethodPost, "http://example.com/v1/categorie", tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestCategorieGetFilter() {
	voce1 := createTestVoce(suite.T(), v1.VoceEditable{Name: "Case"})
	voce2 := createTestVoce(suite.T(), v1.VoceEditable{Name: "Utenze"})

	_ = createTestCategoria(suite.T(), v1.CategoriaEditable{Name: "Condominio", VoceID: voce1.Data.ID})
	_ = createTestCategoria(suite.T(), v1.CategoriaEditable{Name: "Elettricità", VoceID: voce2.Data.ID})
	_ = createTestCategoria(suite.T(), v1.CategoriaEditable{Name: "Gas", VoceID: voce2.Data.ID, Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Voce 1", fmt.Sprintf("voce=%s", voce1.Data.ID), 1},
		{"Voce 2", fmt.Sprintf("voce=%s", voce2.Data.ID), 2},
		{"Voce Not Existing", "voce=c9e4ee7a-e702-4f92-b168-11a95b22c7aa", 0},
		{"Fuzzy name", "name=ondomini", 1},
		{"Archived", "archived=true", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.CategoriaListResponse
			r := test.Request(t, testRouter, http.MethodGet, fmt.Sprintf("http://example.com/v1/categorie?%s", tt.query), "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data))
		})
	}
}

func (suite *TestSuiteStandard) TestCategorieGetFilterInvalidUUID() {
	r := test.Request(suite.T(), testRouter, http.MethodGet, "http://example.com/v1/categorie?voce=notaUUID", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestCategorieUpdate() {
	categoria := createTestCategoria(suite.T(), v1.CategoriaEditable{Name: "Prima"})

	r := test.Request(suite.T(), testRouter, http.MethodPatch, categoria.Data.Links.Self, map[string]any{
		"name": "Dopo",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CategoriaResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "Dopo", response.Data.Name)
	assert.Equal(suite.T(), categoria.Data.VoceID, response.Data.VoceID, "VoceID must not change on a name update")
}

func (suite *TestSuiteStandard) TestCategorieDelete() {
	categoria := createTestCategoria(suite.T(), v1.CategoriaEditable{})

	r := test.Request(suite.T(), testRouter, http.MethodDelete, categoria.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), testRouter, http.MethodGet, categoria.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
