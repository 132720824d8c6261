package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Documento is the metadata of a file attached to a spesa. The bytes
// themselves live behind the storage boundary, referenced by the opaque
// StoragePath locator.
type Documento struct {
	DefaultModel
	SpesaID     uuid.UUID `json:"spesaId"`                                                  // ID of the spesa the documento belongs to
	Filename    string    `json:"filename" example:"fattura-enel-2025-01.pdf"`              // Original file name
	StoragePath string    `json:"storagePath" example:"spese/65392deb/fattura.pdf"`         // Opaque locator in the storage backend
	MIMEType    string    `json:"mimeType" example:"application/pdf" default:""`            // MIME type of the file
	SizeBytes   int64     `json:"sizeBytes" example:"241042"`                               // Size of the file in bytes
	UploadedBy  string    `json:"uploadedBy" example:"Giulia"`                              // Name of the household member that uploaded the file
}

func (Documento) TableName() string {
	return "documenti"
}

func (d *Documento) BeforeSave(_ *gorm.DB) error {
	d.Filename = strings.TrimSpace(d.Filename)
	d.UploadedBy = strings.TrimSpace(d.UploadedBy)
	return nil
}
