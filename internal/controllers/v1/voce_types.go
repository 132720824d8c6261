package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/models"
)

type VoceEditable struct {
	Name      string `json:"name" example:"Case" default:""`          // Name of the voce
	Archived  bool   `json:"archived" example:"true" default:"false"` // Is the voce hidden from pickers?
	SortOrder uint   `json:"sortOrder" example:"1" default:"0"`       // Position in pickers
}

// model returns the database resource for the editable fields
func (editable VoceEditable) model() models.Voce {
	return models.Voce{
		Name:      editable.Name,
		Archived:  editable.Archived,
		SortOrder: editable.SortOrder,
	}
}

type VoceLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/voci/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`            // The voce itself
	Categorie string `json:"categorie" example:"https://example.com/api/v1/categorie?voce=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Categorie below this voce
}

// Voce is the API v1 representation of a Voce.
type Voce struct {
	models.DefaultModel
	VoceEditable
	Links VoceLinks `json:"links"`
}

func newVoce(c *gin.Context, model models.Voce) Voce {
	url := c.GetString(string(models.DBContextURL))

	return Voce{
		DefaultModel: model.DefaultModel,
		VoceEditable: VoceEditable{
			Name:      model.Name,
			Archived:  model.Archived,
			SortOrder: model.SortOrder,
		},
		Links: VoceLinks{
			Self:      fmt.Sprintf("%s/v1/voci/%s", url, model.ID),
			Categorie: fmt.Sprintf("%s/v1/categorie?voce=%s", url, model.ID),
		},
	}
}

type VoceListResponse struct {
	Data       []Voce      `json:"data"`                                                          // List of voci
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type VoceCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []VoceResponse `json:"data"`                                                          // List of created voci
}

func (v *VoceCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	v.Data = append(v.Data, VoceResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type VoceResponse struct {
	Data  *Voce   `json:"data"`                                                          // Data for the voce
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type VoceQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	Archived bool   `form:"archived"`                   // Is the voce archived?
	Search   string `form:"search" filterField:"false"` // Search for this text in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Voce returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Voci to return. Defaults to 50.
}

func (f VoceQueryFilter) model() models.Voce {
	return models.Voce{
		Archived: f.Archived,
	}
}
