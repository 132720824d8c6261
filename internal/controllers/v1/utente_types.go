package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/models"
)

type UtenteEditable struct {
	Name      string `json:"name" example:"Giulia" default:""`        // Name of the utente
	Archived  bool   `json:"archived" example:"true" default:"false"` // Is the utente hidden from pickers?
	SortOrder uint   `json:"sortOrder" example:"1" default:"0"`       // Position in pickers
}

// model returns the database resource for the editable fields
func (editable UtenteEditable) model() models.Utente {
	return models.Utente{
		Name:      editable.Name,
		Archived:  editable.Archived,
		SortOrder: editable.SortOrder,
	}
}

type UtenteLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/utenti/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // The utente itself
}

// Utente is the API v1 representation of an Utente.
type Utente struct {
	models.DefaultModel
	UtenteEditable
	Links UtenteLinks `json:"links"`
}

func newUtente(c *gin.Context, model models.Utente) Utente {
	url := c.GetString(string(models.DBContextURL))

	return Utente{
		DefaultModel: model.DefaultModel,
		UtenteEditable: UtenteEditable{
			Name:      model.Name,
			Archived:  model.Archived,
			SortOrder: model.SortOrder,
		},
		Links: UtenteLinks{
			Self: fmt.Sprintf("%s/v1/utenti/%s", url, model.ID),
		},
	}
}

type UtenteListResponse struct {
	Data       []Utente    `json:"data"`                                                          // List of utenti
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UtenteCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []UtenteResponse `json:"data"`                                                          // List of created utenti
}

func (r *UtenteCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, UtenteResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UtenteResponse struct {
	Data  *Utente `json:"data"`                                                          // Data for the utente
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UtenteQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	Archived bool   `form:"archived"`                   // Is the utente archived?
	Search   string `form:"search" filterField:"false"` // Search for this text in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Utente returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Utenti to return. Defaults to 50.
}

func (f UtenteQueryFilter) model() models.Utente {
	return models.Utente{
		Archived: f.Archived,
	}
}
