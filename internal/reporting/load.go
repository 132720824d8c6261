package reporting

import (
	"github.com/ledgera/backend/internal/types"
	"gorm.io/gorm"
)

// Load flattens every spesa line in the period range into the rows the
// aggregation functions work on. Lookup names are joined in here so the
// views never have to resolve IDs; lines whose voce or categoria has been
// deleted keep an empty name and fall back to the placeholders.
func Load(db *gorm.DB, from, to types.Period) ([]Row, error) {
	var rows []Row

	err := db.Table("righe_spesa").
		Select("righe_spesa.period AS period, " +
			"righe_spesa.voce_id AS voce_id, " +
			"righe_spesa.categoria_id AS categoria_id, " +
			"righe_spesa.sub_categoria_id AS sub_categoria_id, " +
			"voci.name AS voce_name, " +
			"categorie.name AS categoria_name, " +
			"spese.type AS type, " +
			"righe_spesa.amount AS amount").
		Joins("JOIN spese ON spese.id = righe_spesa.spesa_id").
		Joins("LEFT JOIN voci ON voci.id = righe_spesa.voce_id").
		Joins("LEFT JOIN categorie ON categorie.id = righe_spesa.categoria_id").
		Where("righe_spesa.period >= ?", from).
		Where("righe_spesa.period <= ?", to).
		Order("righe_spesa.period ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
