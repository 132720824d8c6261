package importer

import (
	"strings"

	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/types"
	"gorm.io/gorm"
)

// RowResult is the outcome of importing a single row.
type RowResult struct {
	RowNum  int    `json:"rowNum" example:"2"`                    // Position of the row in the file
	Success bool   `json:"success" example:"true"`                // Did the row import?
	Error   string `json:"error,omitempty" example:"Voce \"Casa\" non trovata"` // Reason for the failure
}

// Result is the outcome of a whole import run.
type Result struct {
	Imported int         `json:"imported" example:"10"` // Number of spese created
	Failed   int         `json:"failed" example:"1"`    // Number of rows that did not import
	Rows     []RowResult `json:"rows"`                  // Per-row outcomes
}

// Create imports the rows best-effort: every valid row becomes a spesa
// with generated righe, one failing row does not stop the others. Rows
// that did not validate are reported as failed with their errors.
func Create(db *gorm.DB, rows []ParsedRow, enteredBy string) Result {
	result := Result{Rows: make([]RowResult, 0, len(rows))}

	for _, row := range rows {
		if !row.Valid() {
			result.Failed++
			result.Rows = append(result.Rows, RowResult{RowNum: row.RowNum, Error: strings.Join(row.Errors, "; ")})
			continue
		}

		spesa := models.Spesa{
			DocumentDate:  types.NewPeriod(row.AnnoDF, row.MeseDF),
			InvoiceNumber: row.Fattura,
			Reference:     row.Riferimento,
			TotalAmount:   row.Importo,
			Description:   row.Descrizione,
			Note:          row.Note,
			EnteredBy:     enteredBy,
			Source:        models.SpesaSourceManual,
			Type:          row.Tipo,
			PeriodFrom:    types.NewPeriod(row.AnnoRifDa, row.MeseRifDa),
			PeriodTo:      types.NewPeriod(row.AnnoRifA, row.MeseRifA),
			FornitoreID:   row.FornitoreID,
		}
		spesa.Righe = spesa.GenerateRighe(row.VoceID, row.CategoriaID, row.SubCategoriaID)

		err := spesa.VerifyRighe()
		if err == nil {
			err = db.Create(&spesa).Error
		}

		if err != nil {
			result.Failed++
			result.Rows = append(result.Rows, RowResult{RowNum: row.RowNum, Error: err.Error()})
			continue
		}

		result.Imported++
		result.Rows = append(result.Rows, RowResult{RowNum: row.RowNum, Success: true})
	}

	return result
}
