package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Fields of SpesaEditable that are columns of the spese table. Everything
// else in the editable controls the righe handling and must not end up in
// an Updates call.
var spesaColumnFields = []string{
	"DocumentDate",
	"InvoiceNumber",
	"Reference",
	"TotalAmount",
	"Description",
	"Note",
	"EnteredBy",
	"Source",
	"Type",
	"PeriodFrom",
	"PeriodTo",
	"FornitoreID",
}

// RegisterSpesaRoutes registers the routes for spese with
// the RouterGroup that is passed.
func RegisterSpesaRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSpesaList)
		r.GET("", GetSpese)
		r.POST("", CreateSpese)
		r.DELETE("", DeleteSpese)
	}

	// Spesa with ID
	{
		r.OPTIONS("/:id", OptionsSpesaDetail)
		r.GET("/:id", GetSpesa)
		r.PATCH("/:id", UpdateSpesa)
		r.DELETE("/:id", DeleteSpesa)
	}
}

// righeOrdered preloads the righe of a spesa in period order.
func righeOrdered(db *gorm.DB) *gorm.DB {
	return db.Order("period ASC")
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spese
// @Success		204
// @Router			/v1/spese [options]
func OptionsSpesaList(c *gin.Context) {
	httputil.OptionsGetPostDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spese
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spese/{id} [options]
func OptionsSpesaDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Spesa{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Creates spese
// @Description	Creates new spese. When no explicit righe are sent, the righe are generated by splitting the total over the reference range.
// @Tags			Spese
// @Produce		json
// @Success		201		{object}	SpesaCreateResponse
// @Failure		400		{object}	SpesaCreateResponse
// @Failure		404		{object}	SpesaCreateResponse
// @Failure		500		{object}	SpesaCreateResponse
// @Param			spese	body		[]SpesaEditable	true	"Spese"
// @Router			/v1/spese [post]
func CreateSpese(c *gin.Context) {
	var editables []SpesaEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpesaCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SpesaCreateResponse{}

	for _, editable := range editables {
		spesa, err := editable.model()
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.Create(&spesa).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSpesa(c, spesa)
		r.Data = append(r.Data, SpesaResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List spese
// @Description	Returns a list of spese
// @Tags			Spese
// @Produce		json
// @Success		200	{object}	SpesaListResponse
// @Failure		400	{object}	SpesaListResponse
// @Failure		500	{object}	SpesaListResponse
// @Router			/v1/spese [get]
// @Param			description		query	string	false	"Filter by description"
// @Param			note			query	string	false	"Filter by note"
// @Param			search			query	string	false	"Glob pattern matched against description and reference"
// @Param			invoiceNumber	query	string	false	"Filter by invoice number"
// @Param			enteredBy		query	string	false	"Filter by the household member that entered the spesa"
// @Param			source			query	string	false	"Filter by source channel"
// @Param			type			query	string	false	"Filter by type, ACT or BUDGET"
// @Param			fornitore		query	string	false	"Filter by fornitore ID"
// @Param			voce			query	string	false	"Filter by the voce of the first riga"
// @Param			categoria		query	string	false	"Filter by the categoria of the first riga"
// @Param			subCategoria	query	string	false	"Filter by the sub-categoria of the first riga"
// @Param			from			query	string	false	"Keep spese whose reference range overlaps this period or later (YYYY-MM)"
// @Param			to				query	string	false	"Keep spese whose reference range overlaps this period or earlier (YYYY-MM)"
// @Param			offset			query	uint	false	"The offset of the first Spesa returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of Spese to return. Defaults to 50."
func GetSpese(c *gin.Context) {
	var filter SpesaQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SpesaListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Preload("Righe", righeOrdered).
		Order("document_date DESC, created_at DESC").
		Where(&model, queryFields...)

	q = spesaStringFilters(q, setFields, filter.Description, filter.Note)

	if filter.Type != "" {
		spesaType, err := models.ParseSpesaType(filter.Type)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, SpesaListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("type = ?", spesaType)
	}

	if filter.Source != "" {
		q = q.Where("source = ?", filter.Source)
	}

	if filter.FornitoreID != "" {
		fornitoreID, err := httputil.UUIDFromString(filter.FornitoreID)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SpesaListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("fornitore_id = ?", fornitoreID)
	}

	q, err := spesaClassificationFilters(q, filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaListResponse{
			Error: &s,
		})
		return
	}

	q, err = spesaRangeFilters(q, filter)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SpesaListResponse{
			Error: &s,
		})
		return
	}

	// Default to 50 Spese and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	// The glob search cannot run in SQL, so it works on the full filtered
	// set and pagination is applied afterwards.
	if filter.Search != "" {
		var spese []models.Spesa
		if err := q.Find(&spese).Error; err != nil {
			s := err.Error()
			c.JSON(status(err), SpesaListResponse{
				Error: &s,
			})
			return
		}

		matched := searchSpese(spese, filter.Search)

		count := int64(len(matched))
		offset := int(filter.Offset)
		if offset > len(matched) {
			offset = len(matched)
		}

		end := len(matched)
		if limit >= 0 && offset+limit < end {
			end = offset + limit
		}

		data := make([]Spesa, 0)
		for _, spesa := range matched[offset:end] {
			data = append(data, newSpesa(c, spesa))
		}

		c.JSON(http.StatusOK, SpesaListResponse{
			Data: data,
			Pagination: &Pagination{
				Count:  len(data),
				Total:  count,
				Offset: filter.Offset,
				Limit:  limit,
			},
		})
		return
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var spese []models.Spesa
	err = q.Find(&spese).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpesaListResponse{
			Error: &e,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Spesa, 0)
	for _, spesa := range spese {
		data = append(data, newSpesa(c, spesa))
	}

	c.JSON(http.StatusOK, SpesaListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// spesaClassificationFilters filters spese by the classification of their
// first riga. Multi month spese are classified by the line with the
// earliest period.
func spesaClassificationFilters(q *gorm.DB, filter SpesaQueryFilter) (*gorm.DB, error) {
	if filter.VoceID == "" && filter.CategoriaID == "" && filter.SubCategoriaID == "" {
		return q, nil
	}

	prima := models.DB.Model(&models.RigaSpesa{}).
		Select("spesa_id, voce_id, categoria_id, sub_categoria_id, min(period) AS period").
		Group("spesa_id")

	q = q.Joins("JOIN (?) AS prima ON prima.spesa_id = spese.id", prima)

	if filter.VoceID != "" {
		voceID, err := httputil.UUIDFromString(filter.VoceID)
		if err != nil {
			return nil, err
		}
		q = q.Where("prima.voce_id = ?", voceID)
	}

	if filter.CategoriaID != "" {
		categoriaID, err := httputil.UUIDFromString(filter.CategoriaID)
		if err != nil {
			return nil, err
		}
		q = q.Where("prima.categoria_id = ?", categoriaID)
	}

	if filter.SubCategoriaID != "" {
		subCategoriaID, err := httputil.UUIDFromString(filter.SubCategoriaID)
		if err != nil {
			return nil, err
		}
		q = q.Where("prima.sub_categoria_id = ?", subCategoriaID)
	}

	return q, nil
}

// spesaRangeFilters keeps the spese whose reference range overlaps the
// requested period window.
func spesaRangeFilters(q *gorm.DB, filter SpesaQueryFilter) (*gorm.DB, error) {
	if filter.From != "" {
		from, err := types.ParsePeriod(filter.From)
		if err != nil {
			return nil, err
		}
		q = q.Where("period_to >= ?", from)
	}

	if filter.To != "" {
		to, err := types.ParsePeriod(filter.To)
		if err != nil {
			return nil, err
		}
		q = q.Where("period_from <= ?", to)
	}

	return q, nil
}

// searchSpese matches the description and reference of every spesa against
// a case insensitive glob pattern. A pattern without wildcards is treated
// as a substring search.
func searchSpese(spese []models.Spesa, search string) []models.Spesa {
	pattern := strings.ToLower(search)
	if !strings.Contains(pattern, "*") {
		pattern = "*" + pattern + "*"
	}

	matched := make([]models.Spesa, 0)
	for _, spesa := range spese {
		if glob.Glob(pattern, strings.ToLower(spesa.Description)) || glob.Glob(pattern, strings.ToLower(spesa.Reference)) {
			matched = append(matched, spesa)
		}
	}

	return matched
}

// @Summary		Get spesa
// @Description	Returns a specific spesa with its righe
// @Tags			Spese
// @Produce		json
// @Success		200	{object}	SpesaResponse
// @Failure		400	{object}	SpesaResponse
// @Failure		404	{object}	SpesaResponse
// @Failure		500	{object}	SpesaResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spese/{id} [get]
func GetSpesa(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaResponse{
			Error: &s,
		})
		return
	}

	var spesa models.Spesa
	err = models.DB.Preload("Righe", righeOrdered).First(&spesa, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaResponse{
			Error: &s,
		})
		return
	}

	data := newSpesa(c, spesa)
	c.JSON(http.StatusOK, SpesaResponse{Data: &data})
}

// @Summary		Update spesa
// @Description	Updates a spesa. Only values to be updated need to be specified. The righe are regenerated from the updated totals unless keepRighe is set or explicit righe are sent.
// @Tags			Spese
// @Produce		json
// @Success		200		{object}	SpesaResponse
// @Failure		400		{object}	SpesaResponse
// @Failure		404		{object}	SpesaResponse
// @Failure		500		{object}	SpesaResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spesa	body		SpesaEditable	true	"Spesa"
// @Router			/v1/spese/{id} [patch]
func UpdateSpesa(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaResponse{
			Error: &s,
		})
		return
	}

	var spesa models.Spesa
	err = models.DB.First(&spesa, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SpesaEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaResponse{
			Error: &s,
		})
		return
	}

	// Only fields that are columns of the spese table may reach Updates
	columns := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		if name, ok := field.(string); ok && slices.Contains(spesaColumnFields, name) {
			columns = append(columns, field)
		}
	}

	var data SpesaEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if len(columns) > 0 {
			if err := tx.Model(&spesa).Select("", columns...).Updates(data.base()).Error; err != nil {
				return err
			}
		}

		// Keeping a hand-adjusted line set is a one shot decision, the
		// invariant is still checked against the updated totals.
		if data.KeepRighe && len(data.Righe) == 0 {
			if err := tx.Where("spesa_id = ?", spesa.ID).Order("period ASC").Find(&spesa.Righe).Error; err != nil {
				return err
			}
			return spesa.VerifyRighe()
		}

		// Regenerated righe keep the classification of the stored first
		// line unless the body sets one.
		if data.VoceID == uuid.Nil && len(data.Righe) == 0 {
			var prima models.RigaSpesa
			if err := tx.Where("spesa_id = ?", spesa.ID).Order("period ASC").First(&prima).Error; err != nil {
				return err
			}
			data.VoceID = prima.VoceID
			data.CategoriaID = prima.CategoriaID
			data.SubCategoriaID = prima.SubCategoriaID
		}

		righe, err := data.righe(spesa)
		if err != nil {
			return err
		}

		if err := tx.Where("spesa_id = ?", spesa.ID).Delete(&models.RigaSpesa{}).Error; err != nil {
			return err
		}

		for i := range righe {
			righe[i].SpesaID = spesa.ID
		}
		if err := tx.Create(&righe).Error; err != nil {
			return err
		}

		spesa.Righe = righe
		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpesaResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSpesa(c, spesa)
	c.JSON(http.StatusOK, SpesaResponse{Data: &apiResource})
}

// @Summary		Delete spesa
// @Description	Deletes a spesa with its righe and documenti
// @Tags			Spese
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spese/{id} [delete]
func DeleteSpesa(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var spesa models.Spesa
	err = models.DB.First(&spesa, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&spesa).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Delete spese
// @Description	Deletes multiple spese in one request. Deletion continues past individual failures, the result lists the outcome per ID.
// @Tags			Spese
// @Produce		json
// @Success		200	{object}	SpesaDeleteResponse
// @Failure		400	{object}	SpesaDeleteResponse
// @Failure		404	{object}	SpesaDeleteResponse
// @Failure		500	{object}	SpesaDeleteResponse
// @Param			ids	body		SpesaDeleteRequest	true	"IDs of the spese to delete"
// @Router			/v1/spese [delete]
func DeleteSpese(c *gin.Context) {
	var request SpesaDeleteRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpesaDeleteResponse{
			Error: &e,
		})
		return
	}

	if len(request.IDs) == 0 {
		e := errNoIDs.Error()
		c.JSON(http.StatusBadRequest, SpesaDeleteResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	finalStatus := http.StatusOK
	r := SpesaDeleteResponse{
		Data: make([]SpesaDeleteResult, 0, len(request.IDs)),
	}

	for _, id := range request.IDs {
		var spesa models.Spesa
		err := models.DB.First(&spesa, "id = ?", id).Error
		if err == nil {
			err = models.DB.Delete(&spesa).Error
		}

		if err != nil {
			s := err.Error()
			r.Data = append(r.Data, SpesaDeleteResult{ID: id, Error: &s})

			if newStatus := status(err); newStatus > finalStatus {
				finalStatus = newStatus
			}
			continue
		}

		r.Data = append(r.Data, SpesaDeleteResult{ID: id})
	}

	c.JSON(finalStatus, r)
}
