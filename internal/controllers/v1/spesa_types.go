package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RigaEditable is one line of a spesa as it is sent by clients. The
// classification fields are optional, lines without them inherit the
// classification set on the spesa.
type RigaEditable struct {
	Period         types.Period    `json:"period" example:"2025-01"`                                          // Reference period of the riga
	Amount         decimal.Decimal `json:"amount" example:"75"`                                               // Amount allocated to the period
	VoceID         uuid.UUID       `json:"voceId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`             // ID of the Voce
	CategoriaID    uuid.UUID       `json:"categoriaId" example:"a6f2d1b3-e3a0-4a5c-b519-5ca41b03e7ad"`        // ID of the Categoria
	SubCategoriaID *uuid.UUID      `json:"subCategoriaId" example:"bcddd90b-2904-418f-8b33-0b1c4a9f4f4d"`     // ID of the Sub-Categoria, if any
}

// model returns the database resource for the riga. Classification fields
// the riga does not carry are taken from the spesa-level editable.
func (riga RigaEditable) model(editable SpesaEditable) models.RigaSpesa {
	voceID := riga.VoceID
	if voceID == uuid.Nil {
		voceID = editable.VoceID
	}

	categoriaID := riga.CategoriaID
	if categoriaID == uuid.Nil {
		categoriaID = editable.CategoriaID
	}

	subCategoriaID := riga.SubCategoriaID
	if subCategoriaID == nil {
		subCategoriaID = editable.SubCategoriaID
	}

	return models.RigaSpesa{
		Period:         riga.Period,
		Amount:         riga.Amount,
		VoceID:         voceID,
		CategoriaID:    categoriaID,
		SubCategoriaID: subCategoriaID,
	}
}

type SpesaEditable struct {
	DocumentDate  types.Period       `json:"documentDate" example:"2025-01"`                               // Year and month of the document/invoice
	InvoiceNumber string             `json:"invoiceNumber" example:"F-2025-001" default:""`                // Invoice number, if any
	Reference     string             `json:"reference" example:"RID 0042" default:""`                      // Free text reference
	TotalAmount   decimal.Decimal    `json:"totalAmount" example:"150"`                                    // Total amount of the spesa
	Description   string             `json:"description" example:"Condominio gennaio-febbraio" default:""` // Description of the spesa
	Note          string             `json:"note" default:""`                                              // Notes
	EnteredBy     string             `json:"enteredBy" example:"Giulia"`                                   // Name of the household member that entered the spesa
	Source        models.SpesaSource `json:"source" example:"manuale" default:"manuale"`                   // Channel the spesa was recorded through
	Type          models.SpesaType   `json:"type" example:"ACT" default:"ACT"`                             // ACT for actual spend, BUDGET for forecasts
	PeriodFrom    types.Period       `json:"periodFrom" example:"2025-01"`                                 // First reference period. Defaults to the document date
	PeriodTo      types.Period       `json:"periodTo" example:"2025-02"`                                   // Last reference period, inclusive. Defaults to periodFrom
	FornitoreID   *uuid.UUID         `json:"fornitoreId"`                                                  // ID of the Fornitore, if any
	VoceID        uuid.UUID          `json:"voceId"`                                                       // Classification for generated righe
	CategoriaID   uuid.UUID          `json:"categoriaId"`                                                  // Classification for generated righe
	SubCategoriaID *uuid.UUID        `json:"subCategoriaId"`                                               // Classification for generated righe, if any
	Righe         []RigaEditable     `json:"righe"`                                                        // Explicit righe. When empty, righe are generated from the range and total
	KeepRighe     bool               `json:"keepRighe" default:"false"`                                    // Keep the stored righe instead of regenerating them on update
}

// base returns the database resource for the fields that are columns of the
// spese table. Righe handling is separate, see righe.
func (editable SpesaEditable) base() models.Spesa {
	return models.Spesa{
		DocumentDate:  editable.DocumentDate,
		InvoiceNumber: editable.InvoiceNumber,
		Reference:     editable.Reference,
		TotalAmount:   editable.TotalAmount,
		Description:   editable.Description,
		Note:          editable.Note,
		EnteredBy:     editable.EnteredBy,
		Source:        editable.Source,
		Type:          editable.Type,
		PeriodFrom:    editable.PeriodFrom,
		PeriodTo:      editable.PeriodTo,
		FornitoreID:   editable.FornitoreID,
	}
}

// righe builds the replacement line set for the spesa: the explicit lines
// when any were sent, the generated monthly split otherwise. The line set
// invariant is checked before anything is returned.
func (editable SpesaEditable) righe(spesa models.Spesa) ([]models.RigaSpesa, error) {
	if len(editable.Righe) > 0 {
		spesa.Righe = make([]models.RigaSpesa, 0, len(editable.Righe))
		for _, riga := range editable.Righe {
			spesa.Righe = append(spesa.Righe, riga.model(editable))
		}
	} else {
		if editable.VoceID == uuid.Nil || editable.CategoriaID == uuid.Nil {
			return nil, errSpesaVoceRequired
		}

		spesa.Righe = spesa.GenerateRighe(editable.VoceID, editable.CategoriaID, editable.SubCategoriaID)
	}

	if err := spesa.VerifyRighe(); err != nil {
		return nil, err
	}

	return spesa.Righe, nil
}

// model returns the full database resource for the editable fields,
// righe included. The period defaults are applied here so that the
// generated righe match what BeforeSave will persist.
func (editable SpesaEditable) model() (models.Spesa, error) {
	spesa := editable.base()

	if spesa.PeriodFrom.IsZero() {
		spesa.PeriodFrom = spesa.DocumentDate
	}
	if spesa.PeriodTo.IsZero() {
		spesa.PeriodTo = spesa.PeriodFrom
	}

	righe, err := editable.righe(spesa)
	if err != nil {
		return models.Spesa{}, err
	}
	spesa.Righe = righe

	return spesa, nil
}

// Riga is the API v1 representation of a RigaSpesa.
type Riga struct {
	models.DefaultModel
	Period         types.Period    `json:"period" example:"2025-01"`  // Reference period of the riga
	Amount         decimal.Decimal `json:"amount" example:"75"`       // Amount allocated to the period
	VoceID         uuid.UUID       `json:"voceId"`                    // ID of the Voce
	CategoriaID    uuid.UUID       `json:"categoriaId"`               // ID of the Categoria
	SubCategoriaID *uuid.UUID      `json:"subCategoriaId"`            // ID of the Sub-Categoria, if any
}

func newRiga(model models.RigaSpesa) Riga {
	return Riga{
		DefaultModel:   model.DefaultModel,
		Period:         model.Period,
		Amount:         model.Amount,
		VoceID:         model.VoceID,
		CategoriaID:    model.CategoriaID,
		SubCategoriaID: model.SubCategoriaID,
	}
}

type SpesaLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/spese/d3004ae2-4390-43a6-a13b-b3ea36c8a8c4"`            // The spesa itself
	Documenti string `json:"documenti" example:"https://example.com/api/v1/documenti?spesa=d3004ae2-4390-43a6-a13b-b3ea36c8a8c4"` // Documenti attached to the spesa
}

// Spesa is the API v1 representation of a Spesa.
type Spesa struct {
	models.DefaultModel
	DocumentDate  types.Period       `json:"documentDate" example:"2025-01"`             // Year and month of the document/invoice
	InvoiceNumber string             `json:"invoiceNumber" example:"F-2025-001"`         // Invoice number, if any
	Reference     string             `json:"reference" example:"RID 0042"`               // Free text reference
	TotalAmount   decimal.Decimal    `json:"totalAmount" example:"150"`                  // Total amount of the spesa
	Description   string             `json:"description"`                                // Description of the spesa
	Note          string             `json:"note"`                                       // Notes
	EnteredBy     string             `json:"enteredBy" example:"Giulia"`                 // Name of the household member that entered the spesa
	Source        models.SpesaSource `json:"source" example:"manuale"`                   // Channel the spesa was recorded through
	Type          models.SpesaType   `json:"type" example:"ACT"`                         // ACT for actual spend, BUDGET for forecasts
	PeriodFrom    types.Period       `json:"periodFrom" example:"2025-01"`               // First reference period
	PeriodTo      types.Period       `json:"periodTo" example:"2025-02"`                 // Last reference period, inclusive
	FornitoreID   *uuid.UUID         `json:"fornitoreId"`                                // ID of the Fornitore, if any
	Righe         []Riga             `json:"righe"`                                      // Period lines of the spesa
	Links         SpesaLinks         `json:"links"`
}

func newSpesa(c *gin.Context, model models.Spesa) Spesa {
	url := c.GetString(string(models.DBContextURL))

	righe := make([]Riga, 0, len(model.Righe))
	for _, riga := range model.Righe {
		righe = append(righe, newRiga(riga))
	}

	return Spesa{
		DefaultModel:  model.DefaultModel,
		DocumentDate:  model.DocumentDate,
		InvoiceNumber: model.InvoiceNumber,
		Reference:     model.Reference,
		TotalAmount:   model.TotalAmount,
		Description:   model.Description,
		Note:          model.Note,
		EnteredBy:     model.EnteredBy,
		Source:        model.Source,
		Type:          model.Type,
		PeriodFrom:    model.PeriodFrom,
		PeriodTo:      model.PeriodTo,
		FornitoreID:   model.FornitoreID,
		Righe:         righe,
		Links: SpesaLinks{
			Self:      fmt.Sprintf("%s/v1/spese/%s", url, model.ID),
			Documenti: fmt.Sprintf("%s/v1/documenti?spesa=%s", url, model.ID),
		},
	}
}

type SpesaListResponse struct {
	Data       []Spesa     `json:"data"`                                                          // List of spese
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type SpesaCreateResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SpesaResponse `json:"data"`                                                          // List of created spese
}

func (r *SpesaCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, SpesaResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SpesaResponse struct {
	Data  *Spesa  `json:"data"`                                                          // Data for the spesa
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SpesaDeleteRequest is the body of a bulk delete.
type SpesaDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"` // IDs of the spese to delete
}

type SpesaDeleteResult struct {
	ID    uuid.UUID `json:"id"`                                            // ID of the spesa
	Error *string   `json:"error" example:"there is no Spesa with this ID"` // The error, if the deletion failed
}

type SpesaDeleteResponse struct {
	Data  []SpesaDeleteResult `json:"data"`                                                          // Result for every requested ID
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SpesaQueryFilter struct {
	Description    string `form:"description" filterField:"false"`    // Fuzzy filter for the description
	Note           string `form:"note" filterField:"false"`           // Fuzzy filter for the note
	Search         string `form:"search" filterField:"false"`         // Glob pattern matched against description and reference
	InvoiceNumber  string `form:"invoiceNumber"`                      // Filter by invoice number
	EnteredBy      string `form:"enteredBy"`                          // Filter by the household member that entered the spesa
	Source         string `form:"source" filterField:"false"`         // Filter by source channel
	Type           string `form:"type" filterField:"false"`           // Filter by type, ACT or BUDGET
	FornitoreID    string `form:"fornitore" filterField:"false"`      // Filter by fornitore ID
	VoceID         string `form:"voce" filterField:"false"`           // Filter by the voce of the first riga
	CategoriaID    string `form:"categoria" filterField:"false"`      // Filter by the categoria of the first riga
	SubCategoriaID string `form:"subCategoria" filterField:"false"`   // Filter by the sub-categoria of the first riga
	From           string `form:"from" filterField:"false"`           // Keep spese whose reference range overlaps this period or later
	To             string `form:"to" filterField:"false"`             // Keep spese whose reference range overlaps this period or earlier
	Offset         uint   `form:"offset" filterField:"false"`         // The offset of the first Spesa returned. Defaults to 0.
	Limit          int    `form:"limit" filterField:"false"`          // Maximum number of Spese to return. Defaults to 50.
}

func (f SpesaQueryFilter) model() models.Spesa {
	return models.Spesa{
		InvoiceNumber: f.InvoiceNumber,
		EnteredBy:     f.EnteredBy,
	}
}
