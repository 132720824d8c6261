package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Voce is a top level expense classification, e.g. "Utilities".
type Voce struct {
	DefaultModel
	Name      string `json:"name" gorm:"uniqueIndex" example:"Case" default:""` // Name of the Voce
	Archived  bool   `json:"archived" example:"true" default:"false"`           // Is the Voce archived?
	SortOrder uint   `json:"sortOrder" example:"1" default:"0"`                 // Position in pickers
}

func (Voce) TableName() string {
	return "voci"
}

func (v *Voce) BeforeSave(_ *gorm.DB) error {
	v.Name = strings.TrimSpace(v.Name)
	return nil
}

// Categoria is an expense classification below a Voce.
//
// A Categoria always belongs to exactly one Voce. Archiving the parent Voce
// does not cascade, existing references stay valid.
type Categoria struct {
	DefaultModel
	VoceID    uuid.UUID `json:"voceId" gorm:"uniqueIndex:categoria_voce_name" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the Voce this Categoria belongs to
	Voce      Voce      `json:"-"`
	Name      string    `json:"name" gorm:"uniqueIndex:categoria_voce_name" example:"Condominio" default:""` // Name of the Categoria
	Archived  bool      `json:"archived" example:"true" default:"false"`                                     // Is the Categoria archived?
	SortOrder uint      `json:"sortOrder" example:"1" default:"0"`                                           // Position in pickers
}

func (Categoria) TableName() string {
	return "categorie"
}

func (c *Categoria) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// SubCategoria is the optional finest classification level, below a Categoria.
type SubCategoria struct {
	DefaultModel
	CategoriaID uuid.UUID `json:"categoriaId" gorm:"uniqueIndex:sub_categoria_categoria_name" example:"a6f2d1b3-e3a0-4a5c-b519-5ca41b03e7ad"` // ID of the Categoria this Sub-Categoria belongs to
	Categoria   Categoria `json:"-"`
	Name        string    `json:"name" gorm:"uniqueIndex:sub_categoria_categoria_name" example:"via Valignani (CH)" default:""` // Name of the Sub-Categoria
	Archived    bool      `json:"archived" example:"true" default:"false"`                                                      // Is the Sub-Categoria archived?
	SortOrder   uint      `json:"sortOrder" example:"1" default:"0"`                                                            // Position in pickers
}

func (SubCategoria) TableName() string {
	return "sub_categorie"
}

func (s *SubCategoria) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	return nil
}

// Fornitore is a supplier spese can reference.
type Fornitore struct {
	DefaultModel
	Name      string `json:"name" gorm:"uniqueIndex" example:"OpenAI" default:""` // Name of the Fornitore
	Archived  bool   `json:"archived" example:"true" default:"false"`             // Is the Fornitore archived?
	SortOrder uint   `json:"sortOrder" example:"1" default:"0"`                   // Position in pickers
}

func (Fornitore) TableName() string {
	return "fornitori"
}

func (f *Fornitore) BeforeSave(_ *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)
	return nil
}

// Utente is a household member. Spese reference the entering Utente by
// name snapshot, not by ID, so renames do not rewrite history.
type Utente struct {
	DefaultModel
	Name      string `json:"name" gorm:"uniqueIndex" example:"Giulia" default:""` // Name of the Utente
	Archived  bool   `json:"archived" example:"true" default:"false"`             // Is the Utente archived?
	SortOrder uint   `json:"sortOrder" example:"1" default:"0"`                   // Position in pickers
}

func (Utente) TableName() string {
	return "utenti"
}

func (u *Utente) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	return nil
}

// Setting is a single persisted key/value pair, e.g. the currently acting
// household member.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey" example:"current-user"` // Name of the setting
	Value string `json:"value" example:"Giulia"`                       // Value of the setting
}

func (Setting) TableName() string {
	return "settings"
}

// SettingCurrentUser is the key the acting household member is stored under.
const SettingCurrentUser = "current-user"
