package models

import (
	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RigaSpesa is one monthly slice of a spesa's total amount.
//
// Righe are created and replaced as a batch by the owning spesa; the only
// independent change a user can make is overriding a line's amount before
// saving, after which the sum invariant is re-checked, not re-derived.
type RigaSpesa struct {
	DefaultModel
	SpesaID        uuid.UUID       `json:"spesaId"`                                             // ID of the spesa this riga belongs to
	VoceID         uuid.UUID       `json:"voceId"`                                              // ID of the Voce
	Voce           Voce            `json:"-"`
	CategoriaID    uuid.UUID       `json:"categoriaId"`                                         // ID of the Categoria
	Categoria      Categoria       `json:"-"`
	SubCategoriaID *uuid.UUID      `json:"subCategoriaId"`                                      // ID of the Sub-Categoria, if any
	SubCategoria   SubCategoria    `json:"-"`
	Period         types.Period    `json:"period" example:"2025-01"`                            // Reference period of the riga
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"75"`       // Amount allocated to the period
}

func (RigaSpesa) TableName() string {
	return "righe_spesa"
}

func (r *RigaSpesa) BeforeSave(_ *gorm.DB) error {
	// Ensure that the Sub-Categoria ID is nil and not a pointer to a nil UUID
	if r.SubCategoriaID != nil && *r.SubCategoriaID == uuid.Nil {
		r.SubCategoriaID = nil
	}

	return nil
}
