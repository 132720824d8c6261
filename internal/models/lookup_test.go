package models_test

import (
	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/models"
	"gorm.io/gorm/clause"
)

func (suite *TestSuiteStandard) TestVoceNameUnique() {
	_ = suite.createTestVoce("Case")

	err := models.DB.Create(&models.Voce{Name: "Case"}).Error
	suite.Assert().ErrorIs(err, models.ErrVoceNameNotUnique)
}

func (suite *TestSuiteStandard) TestVoceTrimsName() {
	voce := suite.createTestVoce("  Utenze  ")
	suite.Assert().Equal("Utenze", voce.Name)
}

func (suite *TestSuiteStandard) TestCategoriaNameUniquePerVoce() {
	casa := suite.createTestVoce("Case")
	auto := suite.createTestVoce("Auto")

	_ = suite.createTestCategoria(casa, "Assicurazione")

	// The same name under another voce is fine
	err := models.DB.Create(&models.Categoria{VoceID: auto.ID, Name: "Assicurazione"}).Error
	suite.Assert().Nil(err)

	err = models.DB.Create(&models.Categoria{VoceID: casa.ID, Name: "Assicurazione"}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoriaNameNotUnique)
}

func (suite *TestSuiteStandard) TestSubCategoriaNameUniquePerCategoria() {
	voce := suite.createTestVoce("Case")
	categoria := suite.createTestCategoria(voce, "Condominio")

	subCategoria := models.SubCategoria{CategoriaID: categoria.ID, Name: "via Valignani (CH)"}
	suite.Require().Nil(models.DB.Create(&subCategoria).Error)

	err := models.DB.Create(&models.SubCategoria{CategoriaID: categoria.ID, Name: "via Valignani (CH)"}).Error
	suite.Assert().ErrorIs(err, models.ErrSubCategoriaNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoriaReferenceChecked() {
	err := models.DB.Create(&models.Categoria{VoceID: uuid.New(), Name: "Condominio"}).Error
	suite.Assert().ErrorIs(err, models.ErrReferenceInvalid)
}

func (suite *TestSuiteStandard) TestFornitoreNameUnique() {
	fornitore := models.Fornitore{Name: "Enel"}
	suite.Require().Nil(models.DB.Create(&fornitore).Error)

	err := models.DB.Create(&models.Fornitore{Name: "Enel"}).Error
	suite.Assert().ErrorIs(err, models.ErrFornitoreNameNotUnique)
}

func (suite *TestSuiteStandard) TestUtenteNameUnique() {
	utente := models.Utente{Name: "Giulia"}
	suite.Require().Nil(models.DB.Create(&utente).Error)

	err := models.DB.Create(&models.Utente{Name: "Giulia"}).Error
	suite.Assert().ErrorIs(err, models.ErrUtenteNameNotUnique)
}

func (suite *TestSuiteStandard) TestSettingUpsert() {
	setting := models.Setting{Key: models.SettingCurrentUser, Value: "Giulia"}
	suite.Require().Nil(models.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&setting).Error)

	setting.Value = "Marco"
	suite.Require().Nil(models.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&setting).Error)

	var read models.Setting
	suite.Require().Nil(models.DB.First(&read, "key = ?", models.SettingCurrentUser).Error)
	suite.Assert().Equal("Marco", read.Value)
}

func (suite *TestSuiteStandard) TestResourceNotFound() {
	err := models.DB.First(&models.Voce{}, "id = ?", uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "Voce")
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	err := models.DB.Create(&models.Voce{Name: "Case"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
