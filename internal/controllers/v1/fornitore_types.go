package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/models"
)

type FornitoreEditable struct {
	Name      string `json:"name" example:"Enel" default:""`          // Name of the fornitore
	Archived  bool   `json:"archived" example:"true" default:"false"` // Is the fornitore hidden from pickers?
	SortOrder uint   `json:"sortOrder" example:"1" default:"0"`       // Position in pickers
}

// model returns the database resource for the editable fields
func (editable FornitoreEditable) model() models.Fornitore {
	return models.Fornitore{
		Name:      editable.Name,
		Archived:  editable.Archived,
		SortOrder: editable.SortOrder,
	}
}

type FornitoreLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/fornitori/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`          // The fornitore itself
	Spese string `json:"spese" example:"https://example.com/api/v1/spese?fornitore=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Spese referencing the fornitore
}

// Fornitore is the API v1 representation of a Fornitore.
type Fornitore struct {
	models.DefaultModel
	FornitoreEditable
	Links FornitoreLinks `json:"links"`
}

func newFornitore(c *gin.Context, model models.Fornitore) Fornitore {
	url := c.GetString(string(models.DBContextURL))

	return Fornitore{
		DefaultModel: model.DefaultModel,
		FornitoreEditable: FornitoreEditable{
			Name:      model.Name,
			Archived:  model.Archived,
			SortOrder: model.SortOrder,
		},
		Links: FornitoreLinks{
			Self:  fmt.Sprintf("%s/v1/fornitori/%s", url, model.ID),
			Spese: fmt.Sprintf("%s/v1/spese?fornitore=%s", url, model.ID),
		},
	}
}

type FornitoreListResponse struct {
	Data       []Fornitore `json:"data"`                                                          // List of fornitori
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type FornitoreCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []FornitoreResponse `json:"data"`                                                          // List of created fornitori
}

func (r *FornitoreCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, FornitoreResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type FornitoreResponse struct {
	Data  *Fornitore `json:"data"`                                                          // Data for the fornitore
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FornitoreQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	Archived bool   `form:"archived"`                   // Is the fornitore archived?
	Search   string `form:"search" filterField:"false"` // Search for this text in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Fornitore returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Fornitori to return. Defaults to 50.
}

func (f FornitoreQueryFilter) model() models.Fornitore {
	return models.Fornitore{
		Archived: f.Archived,
	}
}
