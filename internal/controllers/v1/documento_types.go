package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
)

type DocumentoLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/documenti/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`      // The documento itself
	File  string `json:"file" example:"https://example.com/api/v1/documenti/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/file"` // The file contents
	Spesa string `json:"spesa" example:"https://example.com/api/v1/spese/d3004ae2-4390-43a6-a13b-b3ea36c8a8c4"`         // The spesa the documento is attached to
}

// Documento is the API v1 representation of a Documento. The storage
// locator stays internal, clients download through the file link.
type Documento struct {
	models.DefaultModel
	SpesaID    uuid.UUID      `json:"spesaId"`                                     // ID of the spesa the documento belongs to
	Filename   string         `json:"filename" example:"fattura-enel-2025-01.pdf"` // Original file name
	MIMEType   string         `json:"mimeType" example:"application/pdf"`          // MIME type of the file
	SizeBytes  int64          `json:"sizeBytes" example:"241042"`                  // Size of the file in bytes
	UploadedBy string         `json:"uploadedBy" example:"Giulia"`                 // Name of the household member that uploaded the file
	Links      DocumentoLinks `json:"links"`
}

func newDocumento(c *gin.Context, model models.Documento) Documento {
	url := c.GetString(string(models.DBContextURL))

	return Documento{
		DefaultModel: model.DefaultModel,
		SpesaID:      model.SpesaID,
		Filename:     model.Filename,
		MIMEType:     model.MIMEType,
		SizeBytes:    model.SizeBytes,
		UploadedBy:   model.UploadedBy,
		Links: DocumentoLinks{
			Self:  fmt.Sprintf("%s/v1/documenti/%s", url, model.ID),
			File:  fmt.Sprintf("%s/v1/documenti/%s/file", url, model.ID),
			Spesa: fmt.Sprintf("%s/v1/spese/%s", url, model.SpesaID),
		},
	}
}

type DocumentoListResponse struct {
	Data       []Documento `json:"data"`                                                          // List of documenti
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DocumentoResponse struct {
	Data  *Documento `json:"data"`                                                          // Data for the documento
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DocumentoQueryFilter struct {
	SpesaID    string `form:"spesa"`                      // By spesa ID
	UploadedBy string `form:"uploadedBy"`                 // By the household member that uploaded the file
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first Documento returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of Documenti to return. Defaults to 50.
}

func (f DocumentoQueryFilter) model() (models.Documento, error) {
	spesaID, err := httputil.UUIDFromString(f.SpesaID)
	if err != nil {
		return models.Documento{}, err
	}

	return models.Documento{
		SpesaID:    spesaID,
		UploadedBy: f.UploadedBy,
	}, nil
}
