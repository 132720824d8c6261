package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Constraint violations rewritten by the database callbacks
	ErrVoceNameNotUnique         = errors.New("the Voce name is already in use")
	ErrCategoriaNameNotUnique    = errors.New("the Categoria name is already in use for this Voce")
	ErrSubCategoriaNameNotUnique = errors.New("the Sub-Categoria name is already in use for this Categoria")
	ErrFornitoreNameNotUnique    = errors.New("the Fornitore name is already in use")
	ErrUtenteNameNotUnique       = errors.New("the Utente name is already in use")
	ErrReferenceInvalid          = errors.New("a resource referenced by this resource does not exist")

	// Spesa invariants
	ErrTotalNotPositive  = errors.New("the total amount must be greater than zero")
	ErrRigheSumMismatch  = errors.New("the sum of the line amounts does not match the total amount")
	ErrRigaAmountInvalid = errors.New("line amounts must not be negative")
	ErrRigaOutOfRange    = errors.New("every line period must fall within the reference range of the spesa")
	ErrNoRighe           = errors.New("a spesa must have at least one line")
	ErrRangeInverted     = errors.New("the reference range ends before it starts")
)
