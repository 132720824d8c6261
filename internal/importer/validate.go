package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ledgera/backend/internal/models"
	"github.com/shopspring/decimal"
)

// toInt coerces a cell to an integer, unparseable cells count as zero so
// the range checks below produce the user-facing error.
func toInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// toDecimal coerces a cell to a decimal, accepting both "150.50" and the
// Italian "150,50". Unparseable cells count as zero.
func toDecimal(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Validate coerces and validates the raw rows and resolves their lookup
// names against the active entities. It never fails: every problem lands
// in the row's Errors so the caller can show a full preview.
func Validate(raw []RawRow, lookups Lookups) []ParsedRow {
	rows := make([]ParsedRow, 0, len(raw))
	for i, r := range raw {
		row := ParsedRow{
			RowNum:       i + 2,
			Voce:         r["Voce"],
			Categoria:    r["Categoria"],
			SubCategoria: r["Sub-Categoria"],
			Fornitore:    r["Fornitore"],
			AnnoDF:       toInt(r["Anno DF"]),
			MeseDF:       toInt(r["Mese DF"]),
			Fattura:      r["Fattura #"],
			Riferimento:  r["Riferimento"],
			Importo:      toDecimal(r["Importo Totale"]),
			MeseRifDa:    toInt(r["Mese Rif Da"]),
			AnnoRifDa:    toInt(r["Anno Rif Da"]),
			MeseRifA:     toInt(r["Mese Rif A"]),
			AnnoRifA:     toInt(r["Anno Rif A"]),
			Descrizione:  r["Descrizione"],
			Note:         r["Note"],
			Errors:       []string{},
		}

		// The reference bounds default to the document date, the end of
		// the range to its start
		if row.MeseRifDa == 0 {
			row.MeseRifDa = row.MeseDF
		}
		if row.AnnoRifDa == 0 {
			row.AnnoRifDa = row.AnnoDF
		}
		if row.MeseRifA == 0 {
			row.MeseRifA = row.MeseRifDa
		}
		if row.AnnoRifA == 0 {
			row.AnnoRifA = row.AnnoRifDa
		}

		tipoRaw := strings.ToUpper(strings.TrimSpace(r["Tipo"]))
		tipo, err := models.ParseSpesaType(tipoRaw)
		if err != nil {
			row.Errors = append(row.Errors, fmt.Sprintf("Tipo %q non valido (usa ACT o BUDGET)", tipoRaw))
			tipo = models.SpesaTypeACT
		}
		row.Tipo = tipo

		if row.Voce == "" {
			row.Errors = append(row.Errors, "Voce obbligatoria")
		}
		if row.Categoria == "" {
			row.Errors = append(row.Errors, "Categoria obbligatoria")
		}
		if row.AnnoDF < 2000 || row.AnnoDF > 2100 {
			row.Errors = append(row.Errors, "Anno DF non valido")
		}
		if row.MeseDF < 1 || row.MeseDF > 12 {
			row.Errors = append(row.Errors, "Mese DF non valido")
		}
		if !row.Importo.IsPositive() {
			row.Errors = append(row.Errors, "Importo deve essere > 0")
		}
		if row.MeseRifDa < 1 || row.MeseRifDa > 12 {
			row.Errors = append(row.Errors, "Mese Rif Da non valido")
		}
		if row.MeseRifA < 1 || row.MeseRifA > 12 {
			row.Errors = append(row.Errors, "Mese Rif A non valido")
		}

		resolve(&row, lookups)
		rows = append(rows, row)
	}

	return rows
}

// resolve matches the row's lookup names case-insensitively against the
// active entities. Resolution of a child is skipped when its parent did
// not resolve, one root cause produces one error.
func resolve(row *ParsedRow, lookups Lookups) {
	var voce *models.Voce
	for i := range lookups.Voci {
		if strings.EqualFold(lookups.Voci[i].Name, row.Voce) {
			voce = &lookups.Voci[i]
			break
		}
	}
	if voce == nil {
		row.Errors = append(row.Errors, fmt.Sprintf("Voce %q non trovata", row.Voce))
	} else {
		row.VoceID = voce.ID
	}

	var categoria *models.Categoria
	if voce != nil {
		for i := range lookups.Categorie {
			if lookups.Categorie[i].VoceID == voce.ID && strings.EqualFold(lookups.Categorie[i].Name, row.Categoria) {
				categoria = &lookups.Categorie[i]
				break
			}
		}
		if categoria == nil {
			row.Errors = append(row.Errors, fmt.Sprintf("Categoria %q non trovata per voce %q", row.Categoria, row.Voce))
		} else {
			row.CategoriaID = categoria.ID
		}
	}

	if categoria != nil && row.SubCategoria != "" {
		var subCategoria *models.SubCategoria
		for i := range lookups.SubCategorie {
			if lookups.SubCategorie[i].CategoriaID == categoria.ID && strings.EqualFold(lookups.SubCategorie[i].Name, row.SubCategoria) {
				subCategoria = &lookups.SubCategorie[i]
				break
			}
		}
		if subCategoria == nil {
			row.Errors = append(row.Errors, fmt.Sprintf("Sub-Categoria %q non trovata", row.SubCategoria))
		} else {
			row.SubCategoriaID = &subCategoria.ID
		}
	}

	if row.Fornitore != "" {
		var fornitore *models.Fornitore
		for i := range lookups.Fornitori {
			if strings.EqualFold(lookups.Fornitori[i].Name, row.Fornitore) {
				fornitore = &lookups.Fornitori[i]
				break
			}
		}
		if fornitore == nil {
			row.Errors = append(row.Errors, fmt.Sprintf("Fornitore %q non trovato", row.Fornitore))
		} else {
			row.FornitoreID = &fornitore.ID
		}
	}
}
