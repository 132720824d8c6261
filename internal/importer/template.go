package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/ledgera/backend/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Template writes the import template as CSV: the column header, two
// example rows, and a reference section with every valid Voce/Categoria/
// Sub-Categoria combination, the fornitori, the month numbers and the two
// types. Amounts in the examples use the Italian decimal comma, the
// validator accepts both notations.
func Template(w io.Writer, lookups Lookups) error {
	writer := csv.NewWriter(w)
	year := fmt.Sprint(time.Now().Year())

	printer := message.NewPrinter(language.Italian)
	amount := func(v float64) string {
		return printer.Sprint(number.Decimal(v, number.MinFractionDigits(2)))
	}

	records := [][]string{
		Columns,
		{"Case", "Condominio", "via Valignani (CH)", "Condominio", year, "1", "F-" + year + "-001", "", amount(150), "1", year, "2", year, "Condominio gennaio-febbraio", "", "ACT"},
		{"Altre spese", "AI", "ChatGPT", "OpenAI", year, "2", "", "", amount(20), "2", year, "2", year, "Abbonamento ChatGPT Plus", "", "BUDGET"},
		{},
	}

	reference := [][]string{
		{"Voce", "Categoria", "Sub-Categoria", "Fornitore", "Mesi (1-12)", "Tipo"},
		{"", "", "", "", "", "ACT = Effettivo"},
		{"", "", "", "", "", "BUDGET = Previsione"},
	}

	// One line per valid combination. Parents without children still get
	// a line so their name shows up.
	for _, voce := range lookups.Voci {
		voceHasCategorie := false
		for _, categoria := range lookups.Categorie {
			if categoria.VoceID != voce.ID {
				continue
			}
			voceHasCategorie = true

			categoriaHasSubs := false
			for _, subCategoria := range lookups.SubCategorie {
				if subCategoria.CategoriaID != categoria.ID {
					continue
				}
				categoriaHasSubs = true
				reference = append(reference, []string{voce.Name, categoria.Name, subCategoria.Name, "", "", ""})
			}

			if !categoriaHasSubs {
				reference = append(reference, []string{voce.Name, categoria.Name, "", "", "", ""})
			}
		}

		if !voceHasCategorie {
			reference = append(reference, []string{voce.Name, "", "", "", "", ""})
		}
	}

	// Fornitori and the month legend fill their columns top-down,
	// independently of the combination lines
	setColumn := func(i int, column int, value string) {
		for len(reference) <= i {
			reference = append(reference, []string{"", "", "", "", "", ""})
		}
		reference[i][column] = value
	}

	for i, fornitore := range lookups.Fornitori {
		setColumn(i+1, 3, fornitore.Name)
	}
	for month := 1; month <= 12; month++ {
		setColumn(month, 4, fmt.Sprintf("%d = %s", month, types.MonthName(month)))
	}

	for _, record := range append(records, reference...) {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
