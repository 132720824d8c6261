package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
)

type SubCategoriaEditable struct {
	Name        string    `json:"name" example:"via Valignani (CH)" default:""`                // Name of the sub-categoria
	CategoriaID uuid.UUID `json:"categoriaId" example:"a6f2d1b3-e3a0-4a5c-b519-5ca41b03e7ad"`  // ID of the categoria this sub-categoria belongs to
	Archived    bool      `json:"archived" example:"true" default:"false"`                     // Is the sub-categoria hidden from pickers?
	SortOrder   uint      `json:"sortOrder" example:"1" default:"0"`                           // Position in pickers
}

// model returns the database resource for the editable fields
func (editable SubCategoriaEditable) model() models.SubCategoria {
	return models.SubCategoria{
		Name:        editable.Name,
		CategoriaID: editable.CategoriaID,
		Archived:    editable.Archived,
		SortOrder:   editable.SortOrder,
	}
}

type SubCategoriaLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/sub-categorie/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // The sub-categoria itself
	Categoria string `json:"categoria" example:"https://example.com/api/v1/categorie/a6f2d1b3-e3a0-4a5c-b519-5ca41b03e7ad"` // The parent categoria
}

// SubCategoria is the API v1 representation of a SubCategoria.
type SubCategoria struct {
	models.DefaultModel
	SubCategoriaEditable
	Links SubCategoriaLinks `json:"links"`
}

func newSubCategoria(c *gin.Context, model models.SubCategoria) SubCategoria {
	url := c.GetString(string(models.DBContextURL))

	return SubCategoria{
		DefaultModel: model.DefaultModel,
		SubCategoriaEditable: SubCategoriaEditable{
			Name:        model.Name,
			CategoriaID: model.CategoriaID,
			Archived:    model.Archived,
			SortOrder:   model.SortOrder,
		},
		Links: SubCategoriaLinks{
			Self:      fmt.Sprintf("%s/v1/sub-categorie/%s", url, model.ID),
			Categoria: fmt.Sprintf("%s/v1/categorie/%s", url, model.CategoriaID),
		},
	}
}

type SubCategoriaListResponse struct {
	Data       []SubCategoria `json:"data"`                                                          // List of sub-categorie
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type SubCategoriaCreateResponse struct {
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SubCategoriaResponse `json:"data"`                                                          // List of created sub-categorie
}

func (r *SubCategoriaCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, SubCategoriaResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SubCategoriaResponse struct {
	Data  *SubCategoria `json:"data"`                                                          // Data for the sub-categoria
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SubCategoriaQueryFilter struct {
	Name        string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	CategoriaID string `form:"categoria"`                  // By categoria ID
	Archived    bool   `form:"archived"`                   // Is the sub-categoria archived?
	Search      string `form:"search" filterField:"false"` // Search for this text in the name
	Offset      uint   `form:"offset" filterField:"false"` // The offset of the first Sub-Categoria returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`  // Maximum number of Sub-Categorie to return. Defaults to 50.
}

func (f SubCategoriaQueryFilter) model() (models.SubCategoria, error) {
	categoriaID, err := httputil.UUIDFromString(f.CategoriaID)
	if err != nil {
		return models.SubCategoria{}, err
	}

	return models.SubCategoria{
		CategoriaID: categoriaID,
		Archived:    f.Archived,
	}, nil
}
