package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterVoceRoutes registers the routes for voci with
// the RouterGroup that is passed.
func RegisterVoceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsVoceList)
		r.GET("", GetVoci)
		r.POST("", CreateVoci)
	}

	// Voce with ID
	{
		r.OPTIONS("/:id", OptionsVoceDetail)
		r.GET("/:id", GetVoce)
		r.PATCH("/:id", UpdateVoce)
		r.DELETE("/:id", DeleteVoce)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Voci
// @Success		204
// @Router			/v1/voci [options]
func OptionsVoceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Voci
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/voci/{id} [options]
func OptionsVoceDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Voce{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Creates voci
// @Description	Creates new voci
// @Tags			Voci
// @Produce		json
// @Success		201		{object}	VoceCreateResponse
// @Failure		400		{object}	VoceCreateResponse
// @Failure		500		{object}	VoceCreateResponse
// @Param			voci	body		[]VoceEditable	true	"Voci"
// @Router			/v1/voci [post]
func CreateVoci(c *gin.Context) {
	var editables []VoceEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoceCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := VoceCreateResponse{}

	for _, editable := range editables {
		voce := editable.model()
		err = models.DB.Create(&voce).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newVoce(c, voce)
		r.Data = append(r.Data, VoceResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List voci
// @Description	Returns a list of voci
// @Tags			Voci
// @Produce		json
// @Success		200	{object}	VoceListResponse
// @Failure		400	{object}	VoceListResponse
// @Failure		500	{object}	VoceListResponse
// @Router			/v1/voci [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			archived	query	bool	false	"Is the voce archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Voce returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Voci to return. Defaults to 50."
func GetVoci(c *gin.Context) {
	var filter VoceQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, VoceListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Order("sort_order ASC, name ASC").
		Where(&model, queryFields...)

	q = nameFilters(q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Voci and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var voci []models.Voce
	err := q.Find(&voci).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VoceListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoceListResponse{
			Error: &e,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Voce, 0)
	for _, voce := range voci {
		data = append(data, newVoce(c, voce))
	}

	c.JSON(http.StatusOK, VoceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get voce
// @Description	Returns a specific voce
// @Tags			Voci
// @Produce		json
// @Success		200	{object}	VoceResponse
// @Failure		400	{object}	VoceResponse
// @Failure		404	{object}	VoceResponse
// @Failure		500	{object}	VoceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/voci/{id} [get]
func GetVoce(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VoceResponse{
			Error: &s,
		})
		return
	}

	var voce models.Voce
	err = models.DB.First(&voce, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VoceResponse{
			Error: &s,
		})
		return
	}

	data := newVoce(c, voce)
	c.JSON(http.StatusOK, VoceResponse{Data: &data})
}

// @Summary		Update voce
// @Description	Updates a voce. Only values to be updated need to be specified.
// @Tags			Voci
// @Produce		json
// @Success		200		{object}	VoceResponse
// @Failure		400		{object}	VoceResponse
// @Failure		404		{object}	VoceResponse
// @Failure		500		{object}	VoceResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			voce	body		VoceEditable	true	"Voce"
// @Router			/v1/voci/{id} [patch]
func UpdateVoce(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VoceResponse{
			Error: &s,
		})
		return
	}

	var voce models.Voce
	err = models.DB.First(&voce, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VoceResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, VoceEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VoceResponse{
			Error: &s,
		})
		return
	}

	var data VoceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VoceResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&voce).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VoceResponse{
			Error: &s,
		})
		return
	}

	apiResource := newVoce(c, voce)
	c.JSON(http.StatusOK, VoceResponse{Data: &apiResource})
}

// @Summary		Delete voce
// @Description	Deletes a voce
// @Tags			Voci
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/voci/{id} [delete]
func DeleteVoce(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var voce models.Voce
	err = models.DB.First(&voce, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&voce).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
