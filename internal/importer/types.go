// Package importer turns uploaded spreadsheet rows into spese: parsing,
// validation against the active lookups, and best-effort creation.
package importer

import (
	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Columns lists the template columns in order. Uploaded files are matched
// by header name, not position, so reordered columns still import.
var Columns = []string{
	"Voce",
	"Categoria",
	"Sub-Categoria",
	"Fornitore",
	"Anno DF",
	"Mese DF",
	"Fattura #",
	"Riferimento",
	"Importo Totale",
	"Mese Rif Da",
	"Anno Rif Da",
	"Mese Rif A",
	"Anno Rif A",
	"Descrizione",
	"Note",
	"Tipo",
}

// RawRow is one uploaded data row, keyed by header name.
type RawRow map[string]string

// ParsedRow is one row after coercion, validation and lookup resolution.
// Errors collects every problem of the row, a row imports only when it is
// empty.
type ParsedRow struct {
	RowNum         int               `json:"rowNum" example:"2"` // 1-indexed position in the file, the header is row 1
	Voce           string            `json:"voce" example:"Case"`
	Categoria      string            `json:"categoria" example:"Condominio"`
	SubCategoria   string            `json:"subCategoria" example:"via Valignani (CH)"`
	Fornitore      string            `json:"fornitore" example:"Condominio"`
	AnnoDF         int               `json:"annoDf" example:"2025"`
	MeseDF         int               `json:"meseDf" example:"1"`
	Fattura        string            `json:"fattura" example:"F-2025-001"`
	Riferimento    string            `json:"riferimento"`
	Importo        decimal.Decimal   `json:"importo" example:"150"`
	MeseRifDa      int               `json:"meseRifDa" example:"1"`
	AnnoRifDa      int               `json:"annoRifDa" example:"2025"`
	MeseRifA       int               `json:"meseRifA" example:"2"`
	AnnoRifA       int               `json:"annoRifA" example:"2025"`
	Descrizione    string            `json:"descrizione" example:"Condominio gennaio-febbraio"`
	Note           string            `json:"note"`
	Tipo           models.SpesaType  `json:"tipo" example:"ACT"`
	Errors         []string          `json:"errors"`
	VoceID         uuid.UUID         `json:"voceId"`
	CategoriaID    uuid.UUID         `json:"categoriaId"`
	SubCategoriaID *uuid.UUID        `json:"subCategoriaId"`
	FornitoreID    *uuid.UUID        `json:"fornitoreId"`
}

// Valid reports whether the row can be imported.
func (r ParsedRow) Valid() bool {
	return len(r.Errors) == 0
}

// Lookups holds the active lookup entities rows are resolved against.
type Lookups struct {
	Voci         []models.Voce
	Categorie    []models.Categoria
	SubCategorie []models.SubCategoria
	Fornitori    []models.Fornitore
}

// LoadLookups reads the non-archived lookup entities in picker order.
func LoadLookups(db *gorm.DB) (Lookups, error) {
	var lookups Lookups

	for _, target := range []any{&lookups.Voci, &lookups.Categorie, &lookups.SubCategorie, &lookups.Fornitori} {
		err := db.Where("archived = false").Order("sort_order").Find(target).Error
		if err != nil {
			return Lookups{}, err
		}
	}

	return lookups, nil
}
