package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SpesaType distinguishes actual spend from budgeted spend.
type SpesaType string

const (
	SpesaTypeACT    SpesaType = "ACT"
	SpesaTypeBUDGET SpesaType = "BUDGET"
)

// ParseSpesaType normalizes a raw type value. The empty string defaults to
// ACT, any other value that is not ACT or BUDGET is an error.
func ParseSpesaType(s string) (SpesaType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(SpesaTypeACT):
		return SpesaTypeACT, nil
	case string(SpesaTypeBUDGET):
		return SpesaTypeBUDGET, nil
	}

	return "", fmt.Errorf("tipo %q is not valid, use ACT or BUDGET", s)
}

// SpesaSource is the channel a spesa was recorded through.
type SpesaSource string

const (
	SpesaSourceManual   SpesaSource = "manuale"
	SpesaSourceAgent    SpesaSource = "ai_agent"
	SpesaSourceTelegram SpesaSource = "telegram"
)

// Spesa is a recorded expense. It owns its righe exclusively: the line set
// is replaced as a whole on edit and deleted with the spesa.
type Spesa struct {
	DefaultModel
	DocumentDate  types.Period    `json:"documentDate" example:"2025-01"`                               // Year and month of the document/invoice
	InvoiceNumber string          `json:"invoiceNumber" example:"F-2025-001" default:""`                // Invoice number, if any
	Reference     string          `json:"reference" example:"RID 0042" default:""`                      // Free text reference
	TotalAmount   decimal.Decimal `json:"totalAmount" gorm:"type:DECIMAL(20,8)" example:"150"`          // Total amount of the spesa
	Description   string          `json:"description" example:"Condominio gennaio-febbraio" default:""` // Description of the spesa
	Note          string          `json:"note" default:""`                                              // Notes
	EnteredBy     string          `json:"enteredBy" example:"Giulia"`                                   // Name of the household member that entered the spesa
	Source        SpesaSource     `json:"source" example:"manuale" default:"manuale"`                   // Channel the spesa was recorded through
	Type          SpesaType       `json:"type" example:"ACT" default:"ACT"`                             // ACT for actual spend, BUDGET for forecasts
	PeriodFrom    types.Period    `json:"periodFrom" example:"2025-01"`                                 // First reference period
	PeriodTo      types.Period    `json:"periodTo" example:"2025-02"`                                   // Last reference period, inclusive
	FornitoreID   *uuid.UUID      `json:"fornitoreId"`                                                  // ID of the Fornitore, if any
	Fornitore     Fornitore       `json:"-"`
	Righe         []RigaSpesa     `json:"righe" gorm:"constraint:OnDelete:CASCADE"`     // Period lines of the spesa
	Documenti     []Documento     `json:"documenti" gorm:"constraint:OnDelete:CASCADE"` // Documents attached to the spesa
}

func (Spesa) TableName() string {
	return "spese"
}

// BeforeSave trims string fields and applies defaults. It enforces the
// business rules every persisted spesa has to fulfill: a positive total and
// a reference range that does not end before it starts.
func (s *Spesa) BeforeSave(_ *gorm.DB) error {
	s.InvoiceNumber = strings.TrimSpace(s.InvoiceNumber)
	s.Reference = strings.TrimSpace(s.Reference)
	s.Description = strings.TrimSpace(s.Description)
	s.Note = strings.TrimSpace(s.Note)
	s.EnteredBy = strings.TrimSpace(s.EnteredBy)

	if s.Source == "" {
		s.Source = SpesaSourceManual
	}

	spesaType, err := ParseSpesaType(string(s.Type))
	if err != nil {
		return err
	}
	s.Type = spesaType

	// Ensure that the Fornitore ID is nil and not a pointer to a nil UUID
	if s.FornitoreID != nil && *s.FornitoreID == uuid.Nil {
		s.FornitoreID = nil
	}

	if s.PeriodFrom.IsZero() {
		s.PeriodFrom = s.DocumentDate
	}
	if s.PeriodTo.IsZero() {
		s.PeriodTo = s.PeriodFrom
	}
	if s.PeriodTo.Before(s.PeriodFrom) {
		return ErrRangeInverted
	}

	if !s.TotalAmount.IsPositive() {
		return ErrTotalNotPositive
	}

	return nil
}

// sumTolerance is the allowed difference between the total amount and the
// sum of the line amounts. Rounding during the split never produces a
// larger difference, so anything beyond this is a data error.
var sumTolerance = decimal.New(1, -2)

// VerifyRighe checks the line set invariant: at least one line, no negative
// amounts, every period inside the reference range, and the amounts summing
// to the total within one cent.
//
// This is the hard gate for every save. Aggregation correctness depends on
// it, so a violation blocks the write instead of being reported as a
// warning.
func (s Spesa) VerifyRighe() error {
	if len(s.Righe) == 0 {
		return ErrNoRighe
	}

	sum := decimal.Zero
	for _, riga := range s.Righe {
		if riga.Amount.IsNegative() {
			return fmt.Errorf("%w: %s for %s", ErrRigaAmountInvalid, riga.Amount, riga.Period)
		}

		if riga.Period.Before(s.PeriodFrom) || riga.Period.After(s.PeriodTo) {
			return fmt.Errorf("%w: %s is outside %s..%s", ErrRigaOutOfRange, riga.Period, s.PeriodFrom, s.PeriodTo)
		}

		sum = sum.Add(riga.Amount)
	}

	if sum.Sub(s.TotalAmount).Abs().GreaterThan(sumTolerance) {
		return fmt.Errorf("%w: righe sum to %s, total is %s", ErrRigheSumMismatch, sum, s.TotalAmount)
	}

	return nil
}

// GenerateRighe derives the line set from the reference range and the total
// amount: one line per period, amounts split with SplitTotal, all lines
// classified with the triple that is passed.
//
// Callers replace the full line set with the result whenever the total or
// the range changes. When hydrating a spesa for edit, regeneration has to
// be skipped exactly once so a hand-adjusted split is not clobbered.
func (s Spesa) GenerateRighe(voceID, categoriaID uuid.UUID, subCategoriaID *uuid.UUID) []RigaSpesa {
	periods := types.PeriodRange(s.PeriodFrom, s.PeriodTo)
	amounts := SplitTotal(s.TotalAmount, len(periods))

	righe := make([]RigaSpesa, 0, len(periods))
	for i, period := range periods {
		righe = append(righe, RigaSpesa{
			SpesaID:        s.ID,
			VoceID:         voceID,
			CategoriaID:    categoriaID,
			SubCategoriaID: subCategoriaID,
			Period:         period,
			Amount:         amounts[i],
		})
	}

	return righe
}

// SplitTotal distributes a total amount over a number of periods at cent
// precision. Every period gets the per-period share rounded down to the
// cent, the remainder goes onto the last period in full. The amounts always
// sum to the total exactly.
//
// A single period gets the total unchanged, zero or negative period counts
// produce an empty result. Negative totals are not rejected here, the sign
// is carried through the same floor-then-remainder arithmetic; rejecting
// non-positive totals is the concern of the spesa validation.
func SplitTotal(total decimal.Decimal, numPeriods int) []decimal.Decimal {
	if numPeriods <= 0 {
		return []decimal.Decimal{}
	}
	if numPeriods == 1 {
		return []decimal.Decimal{total}
	}

	cents := total.Shift(2).Round(0).IntPart()
	per := floorDiv(cents, int64(numPeriods))
	remainder := cents - per*int64(numPeriods)

	amounts := make([]decimal.Decimal, numPeriods)
	for i := range amounts {
		amounts[i] = decimal.New(per, -2)
	}
	amounts[numPeriods-1] = decimal.New(per+remainder, -2)

	return amounts
}

// floorDiv divides rounding towards negative infinity, not towards zero.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
