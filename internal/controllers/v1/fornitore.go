package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterFornitoreRoutes registers the routes for fornitori with
// the RouterGroup that is passed.
func RegisterFornitoreRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFornitoreList)
		r.GET("", GetFornitori)
		r.POST("", CreateFornitori)
	}

	// Fornitore with ID
	{
		r.OPTIONS("/:id", OptionsFornitoreDetail)
		r.GET("/:id", GetFornitore)
		r.PATCH("/:id", UpdateFornitore)
		r.DELETE("/:id", DeleteFornitore)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Fornitori
// @Success		204
// @Router			/v1/fornitori [options]
func OptionsFornitoreList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Fornitori
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/fornitori/{id} [options]
func OptionsFornitoreDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Fornitore{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Creates fornitori
// @Description	Creates new fornitori
// @Tags			Fornitori
// @Produce		json
// @Success		201		{object}	FornitoreCreateResponse
// @Failure		400		{object}	FornitoreCreateResponse
// @Failure		500		{object}	FornitoreCreateResponse
// @Param			fornitori	body		[]FornitoreEditable	true	"Fornitori"
// @Router			/v1/fornitori [post]
func CreateFornitori(c *gin.Context) {
	var editables []FornitoreEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FornitoreCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := FornitoreCreateResponse{}

	for _, editable := range editables {
		fornitore := editable.model()
		err = models.DB.Create(&fornitore).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newFornitore(c, fornitore)
		r.Data = append(r.Data, FornitoreResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List fornitori
// @Description	Returns a list of fornitori
// @Tags			Fornitori
// @Produce		json
// @Success		200	{object}	FornitoreListResponse
// @Failure		400	{object}	FornitoreListResponse
// @Failure		500	{object}	FornitoreListResponse
// @Router			/v1/fornitori [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			archived	query	bool	false	"Is the fornitore archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Fornitore returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Fornitori to return. Defaults to 50."
func GetFornitori(c *gin.Context) {
	var filter FornitoreQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, FornitoreListResponse{
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

	// Default to 50 Fornitori and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var fornitori []models.Fornitore
	err := q.Find(&fornitori).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FornitoreListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FornitoreListResponse{
			Error: &e,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Fornitore, 0)
	for _, fornitore := range fornitori {
		data = append(data, newFornitore(c, fornitore))
	}

	c.JSON(http.StatusOK, FornitoreListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get fornitore
// @Description	Returns a specific fornitore
// @Tags			Fornitori
// @Produce		json
// @Success		200	{object}	FornitoreResponse
// @Failure		400	{object}	FornitoreResponse
// @Failure		404	{object}	FornitoreResponse
// @Failure		500	{object}	FornitoreResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/fornitori/{id} [get]
func GetFornitore(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FornitoreResponse{
			Error: &s,
		})
		return
	}

	var fornitore models.Fornitore
	err = models.DB.First(&fornitore, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FornitoreResponse{
			Error: &s,
		})
		return
	}

	data := newFornitore(c, fornitore)
	c.JSON(http.StatusOK, FornitoreResponse{Data: &data})
}

// @Summary		Update fornitore
// @Description	Updates a fornitore. Only values to be updated need to be specified.
// @Tags			Fornitori
// @Produce		json
// @Success		200		{object}	FornitoreResponse
// @Failure		400		{object}	FornitoreResponse
// @Failure		404		{object}	FornitoreResponse
// @Failure		500		{object}	FornitoreResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			fornitore	body		FornitoreEditable	true	"Fornitore"
// @Router			/v1/fornitori/{id} [patch]
func UpdateFornitore(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FornitoreResponse{
			Error: &s,
		})
		return
	}

	var fornitore models.Fornitore
	err = models.DB.First(&fornitore, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FornitoreResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FornitoreEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FornitoreResponse{
			Error: &s,
		})
		return
	}

	var data FornitoreEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FornitoreResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&fornitore).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FornitoreResponse{
			Error: &s,
		})
		return
	}

	apiResource := newFornitore(c, fornitore)
	c.JSON(http.StatusOK, FornitoreResponse{Data: &apiResource})
}

// @Summary		Delete fornitore
// @Description	Deletes a fornitore
// @Tags			Fornitori
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/fornitori/{id} [delete]
func DeleteFornitore(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var fornitore models.Fornitore
	err = models.DB.First(&fornitore, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&fornitore).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
