package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterSubCategoriaRoutes registers the routes for sub-categorie with
// the RouterGroup that is passed.
func RegisterSubCategoriaRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSubCategoriaList)
		r.GET("", GetSubCategorie)
		r.POST("", CreateSubCategorie)
	}

	// Sub-Categoria with ID
	{
		r.OPTIONS("/:id", OptionsSubCategoriaDetail)
		r.GET("/:id", GetSubCategoria)
		r.PATCH("/:id", UpdateSubCategoria)
		r.DELETE("/:id", DeleteSubCategoria)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SubCategorie
// @Success		204
// @Router			/v1/sub-categorie [options]
func OptionsSubCategoriaList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SubCategorie
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-categorie/{id} [options]
func OptionsSubCategoriaDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.SubCategoria{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Creates sub-categorie
// @Description	Creates new sub-categorie
// @Tags			SubCategorie
// @Produce		json
// @Success		201				{object}	SubCategoriaCreateResponse
// @Failure		400				{object}	SubCategoriaCreateResponse
// @Failure		404				{object}	SubCategoriaCreateResponse
// @Failure		500				{object}	SubCategoriaCreateResponse
// @Param			subCategorie	body		[]SubCategoriaEditable	true	"SubCategorie"
// @Router			/v1/sub-categorie [post]
func CreateSubCategorie(c *gin.Context) {
	var editables []SubCategoriaEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubCategoriaCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := SubCategoriaCreateResponse{}

	for _, editable := range editables {
		subCategoria := editable.model()
		err = models.DB.Create(&subCategoria).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSubCategoria(c, subCategoria)
		r.Data = append(r.Data, SubCategoriaResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List sub-categorie
// @Description	Returns a list of sub-categorie
// @Tags			SubCategorie
// @Produce		json
// @Success		200	{object}	SubCategoriaListResponse
// @Failure		400	{object}	SubCategoriaListResponse
// @Failure		500	{object}	SubCategoriaListResponse
// @Router			/v1/sub-categorie [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			categoria	query	string	false	"Filter by categoria ID"
// @Param			archived	query	bool	false	"Is the sub-categoria archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Sub-Categoria returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Sub-Categorie to return. Defaults to 50."
func GetSubCategorie(c *gin.Context) {
	var filter SubCategoriaQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SubCategoriaListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("sort_order ASC, name ASC").
		Where(&model, queryFields...)

	q = nameFilters(q, setFields, filter.Name, filter.Search)
	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var subCategorie []models.SubCategoria
	err = q.Find(&subCategorie).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubCategoriaListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SubCategoria, 0)
	for _, subCategoria := range subCategorie {
		data = append(data, newSubCategoria(c, subCategoria))
	}

	c.JSON(http.StatusOK, SubCategoriaListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get sub-categoria
// @Description	Returns a specific sub-categoria
// @Tags			SubCategorie
// @Produce		json
// @Success		200	{object}	SubCategoriaResponse
// @Failure		400	{object}	SubCategoriaResponse
// @Failure		404	{object}	SubCategoriaResponse
// @Failure		500	{object}	SubCategoriaResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-categorie/{id} [get]
func GetSubCategoria(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaResponse{
			Error: &s,
		})
		return
	}

	var subCategoria models.SubCategoria
	err = models.DB.First(&subCategoria, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaResponse{
			Error: &s,
		})
		return
	}

	data := newSubCategoria(c, subCategoria)
	c.JSON(http.StatusOK, SubCategoriaResponse{Data: &data})
}

// @Summary		Update sub-categoria
// @Description	Updates a sub-categoria. Only values to be updated need to be specified.
// @Tags			SubCategorie
// @Produce		json
// @Success		200				{object}	SubCategoriaResponse
// @Failure		400				{object}	SubCategoriaResponse
// @Failure		404				{object}	SubCategoriaResponse
// @Failure		500				{object}	SubCategoriaResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			subCategoria	body		SubCategoriaEditable	true	"SubCategoria"
// @Router			/v1/sub-categorie/{id} [patch]
func UpdateSubCategoria(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaResponse{
			Error: &s,
		})
		return
	}

	var subCategoria models.SubCategoria
	err = models.DB.First(&subCategoria, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SubCategoriaEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaResponse{
			Error: &s,
		})
		return
	}

	var data SubCategoriaEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&subCategoria).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubCategoriaResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSubCategoria(c, subCategoria)
	c.JSON(http.StatusOK, SubCategoriaResponse{Data: &apiResource})
}

// @Summary		Delete sub-categoria
// @Description	Deletes a sub-categoria
// @Tags			SubCategorie
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-categorie/{id} [delete]
func DeleteSubCategoria(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var subCategoria models.SubCategoria
	err = models.DB.First(&subCategoria, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&subCategoria).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
