package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterCategoriaRoutes registers the routes for categorie with
// the RouterGroup that is passed.
func RegisterCategoriaRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoriaList)
		r.GET("", GetCategorie)
		r.POST("", CreateCategorie)
	}

	// Categoria with ID
	{
		r.OPTIONS("/:id", OptionsCategoriaDetail)
		r.GET("/:id", GetCategoria)
		r.PATCH("/:id", UpdateCategoria)
		r.DELETE("/:id", DeleteCategoria)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categorie
// @Success		204
// @Router			/v1/categorie [options]
func OptionsCategoriaList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categorie
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categorie/{id} [options]
func OptionsCategoriaDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Categoria{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Creates categorie
// @Description	Creates new categorie
// @Tags			Categorie
// @Produce		json
// @Success		201			{object}	CategoriaCreateResponse
// @Failure		400			{object}	CategoriaCreateResponse
// @Failure		404			{object}	CategoriaCreateResponse
// @Failure		500			{object}	CategoriaCreateResponse
// @Param			categorie	body		[]CategoriaEditable	true	"Categorie"
// @Router			/v1/categorie [post]
func CreateCategorie(c *gin.Context) {
	var editables []CategoriaEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoriaCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := CategoriaCreateResponse{}

	for _, editable := range editables {
		categoria := editable.model()
		err = models.DB.Create(&categoria).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCategoria(c, categoria)
		r.Data = append(r.Data, CategoriaResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List categorie
// @Description	Returns a list of categorie
// @Tags			Categorie
// @Produce		json
// @Success		200	{object}	CategoriaListResponse
// @Failure		400	{object}	CategoriaListResponse
// @Failure		500	{object}	CategoriaListResponse
// @Router			/v1/categorie [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			voce		query	string	false	"Filter by voce ID"
// @Param			archived	query	bool	false	"Is the categoria archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Categoria returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Categorie to return. Defaults to 50."
func GetCategorie(c *gin.Context) {
	var filter CategoriaQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoriaListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaListResponse{
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

	var categorie []models.Categoria
	err = q.Find(&categorie).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoriaListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Categoria, 0)
	for _, categoria := range categorie {
		data = append(data, newCategoria(c, categoria))
	}

	c.JSON(http.StatusOK, CategoriaListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get categoria
// @Description	Returns a specific categoria
// @Tags			Categorie
// @Produce		json
// @Success		200	{object}	CategoriaResponse
// @Failure		400	{object}	CategoriaResponse
// @Failure		404	{object}	CategoriaResponse
// @Failure		500	{object}	CategoriaResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categorie/{id} [get]
func GetCategoria(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaResponse{
			Error: &s,
		})
		return
	}

	var categoria models.Categoria
	err = models.DB.First(&categoria, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaResponse{
			Error: &s,
		})
		return
	}

	data := newCategoria(c, categoria)
	c.JSON(http.StatusOK, CategoriaResponse{Data: &data})
}

// @Summary		Update categoria
// @Description	Updates a categoria. Only values to be updated need to be specified.
// @Tags			Categorie
// @Produce		json
// @Success		200			{object}	CategoriaResponse
// @Failure		400			{object}	CategoriaResponse
// @Failure		404			{object}	CategoriaResponse
// @Failure		500			{object}	CategoriaResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			categoria	body		CategoriaEditable	true	"Categoria"
// @Router			/v1/categorie/{id} [patch]
func UpdateCategoria(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaResponse{
			Error: &s,
		})
		return
	}

	var categoria models.Categoria
	err = models.DB.First(&categoria, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoriaEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaResponse{
			Error: &s,
		})
		return
	}

	var data CategoriaEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&categoria).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoriaResponse{
			Error: &s,
		})
		return
	}

	apiResource := newCategoria(c, categoria)
	c.JSON(http.StatusOK, CategoriaResponse{Data: &apiResource})
}

// @Summary		Delete categoria
// @Description	Deletes a categoria
// @Tags			Categorie
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categorie/{id} [delete]
func DeleteCategoria(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var categoria models.Categoria
	err = models.DB.First(&categoria, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&categoria).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
