package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
)

type CategoriaEditable struct {
	Name      string    `json:"name" example:"Condominio" default:""`                    // Name of the categoria
	VoceID    uuid.UUID `json:"voceId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`   // ID of the voce this categoria belongs to
	Archived  bool      `json:"archived" example:"true" default:"false"`                 // Is the categoria hidden from pickers?
	SortOrder uint      `json:"sortOrder" example:"1" default:"0"`                       // Position in pickers
}

// model returns the database resource for the editable fields
func (editable CategoriaEditable) model() models.Categoria {
	return models.Categoria{
		Name:      editable.Name,
		VoceID:    editable.VoceID,
		Archived:  editable.Archived,
		SortOrder: editable.SortOrder,
	}
}

type CategoriaLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categorie/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                   // The categoria itself
	Voce         string `json:"voce" example:"https://example.com/api/v1/voci/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`                        // The parent voce
	SubCategorie string `json:"subCategorie" example:"https://example.com/api/v1/sub-categorie?categoria=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Sub-categorie below this categoria
}

// Categoria is the API v1 representation of a Categoria.
type Categoria struct {
	models.DefaultModel
	CategoriaEditable
	Links CategoriaLinks `json:"links"`
}

func newCategoria(c *gin.Context, model models.Categoria) Categoria {
	url := c.GetString(string(models.DBContextURL))

	return Categoria{
		DefaultModel: model.DefaultModel,
		CategoriaEditable: CategoriaEditable{
			Name:      model.Name,
			VoceID:    model.VoceID,
			Archived:  model.Archived,
			SortOrder: model.SortOrder,
		},
		Links: CategoriaLinks{
			Self:         fmt.Sprintf("%s/v1/categorie/%s", url, model.ID),
			Voce:         fmt.Sprintf("%s/v1/voci/%s", url, model.VoceID),
			SubCategorie: fmt.Sprintf("%s/v1/sub-categorie?categoria=%s", url, model.ID),
		},
	}
}

type CategoriaListResponse struct {
	Data       []Categoria `json:"data"`                                                          // List of categorie
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoriaCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []CategoriaResponse `json:"data"`                                                          // List of created categorie
}

func (r *CategoriaCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoriaResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoriaResponse struct {
	Data  *Categoria `json:"data"`                                                          // Data for the categoria
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoriaQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	VoceID   string `form:"voce"`                       // By voce ID
	Archived bool   `form:"archived"`                   // Is the categoria archived?
	Search   string `form:"search" filterField:"false"` // Search for this text in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Categoria returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Categorie to return. Defaults to 50.
}

func (f CategoriaQueryFilter) model() (models.Categoria, error) {
	voceID, err := httputil.UUIDFromString(f.VoceID)
	if err != nil {
		return models.Categoria{}, err
	}

	return models.Categoria{
		VoceID:   voceID,
		Archived: f.Archived,
	}, nil
}
