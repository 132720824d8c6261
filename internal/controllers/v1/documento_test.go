package v1_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	v1 "github.com/ledgera/backend/internal/controllers/v1"
	"github.com/ledgera/backend/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartBody builds a multipart request body with a single file and the
// form fields that are passed.
func multipartBody(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, map[string]string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		require.Nil(t, w.WriteField(name, value))
	}

	part, err := w.CreateFormFile("file", filename)
	require.Nil(t, err)

	_, err = part.Write([]byte(content))
	require.Nil(t, err)
	require.Nil(t, w.Close())

	return &buf, map[string]string{"Content-Type": w.FormDataContentType()}
}

func uploadTestDocumento(t *testing.T, spesaID uuid.UUID, filename, content string, expectedStatus ...int) v1.DocumentoResponse {
	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body, headers := multipartBody(t, map[string]string{
		"spesaId":    spesaID.String(),
		"uploadedBy": "Giulia",
	}, filename, content)

	r := test.Request(t, testRouter, http.MethodPost, "http://example.com/v1/documenti", body, headers)
	test.AssertHTTPStatus(t, expectedStatus[0], &r)

	var response v1.DocumentoResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestDocumentiUpload() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{})

	documento := uploadTestDocumento(suite.T(), spesa.Data.ID, "fattura-enel.pdf", "PDF")

	assert.Equal(suite.T(), "fattura-enel.pdf", documento.Data.Filename)
	assert.Equal(suite.T(), int64(3), documento.Data.SizeBytes)
	assert.Equal(suite.T(), "Giulia", documento.Data.UploadedBy)
	assert.Equal(suite.T(), spesa.Data.ID, documento.Data.SpesaID)
	assert.Equal(suite.T(), documento.Data.Links.Self+"/file", documento.Data.Links.File)
}

func (suite *TestSuiteStandard) TestDocumentiUploadFails() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{})

	tests := []struct {
		name   string
		body   func(t *testing.T) (*bytes.Buffer, map[string]string)
		status int
	}{
		{
			"No file",
			func(t *testing.T) (*bytes.Buffer, map[string]string) {
				var buf bytes.Buffer
				w := multipart.NewWriter(&buf)
				require.Nil(t, w.WriteField("spesaId", spesa.Data.ID.String()))
				require.Nil(t, w.Close())
				return &buf, map[string]string{"Content-Type": w.FormDataContentType()}
			},
			http.StatusBadRequest,
		},
		{
			"Invalid spesa ID",
			func(t *testing.T) (*bytes.Buffer, map[string]string) {
				return multipartBody(t, map[string]string{"spesaId": "notaUUID"}, "fattura.pdf", "PDF")
			},
			http.StatusBadRequest,
		},
		{
			"Non-existing spesa",
			func(t *testing.T) (*bytes.Buffer, map[string]string) {
				return multipartBody(t, map[string]string{"spesaId": uuid.NewString()}, "fattura.pdf", "PDF")
			},
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := tt.body(t)
			r := test.Request(t, testRouter, http.MethodPost, "http://example.com/v1/documenti", body, headers)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestDocumentiGetFile() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{})
	documento := uploadTestDocumento(suite.T(), spesa.Data.ID, "nota.txt", "il contenuto del file")

	r := test.Request(suite.T(), testRouter, http.MethodGet, documento.Data.Links.File, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	assert.Equal(suite.T(), "il contenuto del file", r.Body.String())
	assert.Contains(suite.T(), r.Header().Get("Content-Disposition"), "nota.txt")
}

func (suite *TestSuiteStandard) TestDocumentiGetFilter() {
	spesa1 := createTestSpesa(suite.T(), v1.SpesaEditable{})
	spesa2 := createTestSpesa(suite.T(), v1.SpesaEditable{})

	_ = uploadTestDocumento(suite.T(), spesa1.Data.ID, "fattura-1.pdf", "uno")
	_ = uploadTestDocumento(suite.T(), spesa1.Data.ID, "fattura-2.pdf", "due")
	_ = uploadTestDocumento(suite.T(), spesa2.Data.ID, "ricevuta.pdf", "tre")

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Spesa 1", fmt.Sprintf("spesa=%s", spesa1.Data.ID), 2},
		{"Spesa 2", fmt.Sprintf("spesa=%s", spesa2.Data.ID), 1},
		{"Uploader", "uploadedBy=Giulia", 3},
		{"Unknown uploader", "uploadedBy=Marco", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.DocumentoListResponse
			r := test.Request(t, testRouter, http.MethodGet, fmt.Sprintf("http://example.com/v1/documenti?%s", tt.query), "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data))
		})
	}
}

func (suite *TestSuiteStandard) TestDocumentiDelete() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{})
	documento := uploadTestDocumento(suite.T(), spesa.Data.ID, "fattura.pdf", "PDF")

	r := test.Request(suite.T(), testRouter, http.MethodDelete, documento.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), testRouter, http.MethodGet, documento.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	r = test.Request(suite.T(), testRouter, http.MethodDelete, documento.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

// TestDocumentiSpesaDeleteCascades verifies that deleting a spesa deletes
// the metadata of its documenti.
func (suite *TestSuiteStandard) TestDocumentiSpesaDeleteCascades() {
	spesa := createTestSpesa(suite.T(), v1.SpesaEditable{})
	documento := uploadTestDocumento(suite.T(), spesa.Data.ID, "fattura.pdf", "PDF")

	r := test.Request(suite.T(), testRouter, http.MethodDelete, spesa.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), testRouter, http.MethodGet, documento.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
