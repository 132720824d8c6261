package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterUtenteRoutes registers the routes for utenti with
// the RouterGroup that is passed.
func RegisterUtenteRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsUtenteList)
		r.GET("", GetUtenti)
		r.POST("", CreateUtenti)
	}

	// Utente with ID
	{
		r.OPTIONS("/:id", OptionsUtenteDetail)
		r.GET("/:id", GetUtente)
		r.PATCH("/:id", UpdateUtente)
		r.DELETE("/:id", DeleteUtente)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Utenti
// @Success		204
// @Router			/v1/utenti [options]
func OptionsUtenteList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Utenti
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/utenti/{id} [options]
func OptionsUtenteDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Utente{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Creates utenti
// @Description	Creates new utenti
// @Tags			Utenti
// @Produce		json
// @Success		201		{object}	UtenteCreateResponse
// @Failure		400		{object}	UtenteCreateResponse
// @Failure		500		{object}	UtenteCreateResponse
// @Param			utenti	body		[]UtenteEditable	true	"Utenti"
// @Router			/v1/utenti [post]
func CreateUtenti(c *gin.Context) {
	var editables []UtenteEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UtenteCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := UtenteCreateResponse{}

	for _, editable := range editables {
		utente := editable.model()
		err = models.DB.Create(&utente).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newUtente(c, utente)
		r.Data = append(r.Data, UtenteResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List utenti
// @Description	Returns a list of utenti
// @Tags			Utenti
// @Produce		json
// @Success		200	{object}	UtenteListResponse
// @Failure		400	{object}	UtenteListResponse
// @Failure		500	{object}	UtenteListResponse
// @Router			/v1/utenti [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			archived	query	bool	false	"Is the utente archived?"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Utente returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Utenti to return. Defaults to 50."
func GetUtenti(c *gin.Context) {
	var filter UtenteQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, UtenteListResponse{
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

	// Default to 50 Utenti and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var utenti []models.Utente
	err := q.Find(&utenti).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtenteListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UtenteListResponse{
			Error: &e,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Utente, 0)
	for _, utente := range utenti {
		data = append(data, newUtente(c, utente))
	}

	c.JSON(http.StatusOK, UtenteListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get utente
// @Description	Returns a specific utente
// @Tags			Utenti
// @Produce		json
// @Success		200	{object}	UtenteResponse
// @Failure		400	{object}	UtenteResponse
// @Failure		404	{object}	UtenteResponse
// @Failure		500	{object}	UtenteResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/utenti/{id} [get]
func GetUtente(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtenteResponse{
			Error: &s,
		})
		return
	}

	var utente models.Utente
	err = models.DB.First(&utente, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtenteResponse{
			Error: &s,
		})
		return
	}

	data := newUtente(c, utente)
	c.JSON(http.StatusOK, UtenteResponse{Data: &data})
}

// @Summary		Update utente
// @Description	Updates a utente. Only values to be updated need to be specified.
// @Tags			Utenti
// @Produce		json
// @Success		200		{object}	UtenteResponse
// @Failure		400		{object}	UtenteResponse
// @Failure		404		{object}	UtenteResponse
// @Failure		500		{object}	UtenteResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			utente	body		UtenteEditable	true	"Utente"
// @Router			/v1/utenti/{id} [patch]
func UpdateUtente(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtenteResponse{
			Error: &s,
		})
		return
	}

	var utente models.Utente
	err = models.DB.First(&utente, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtenteResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, UtenteEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtenteResponse{
			Error: &s,
		})
		return
	}

	var data UtenteEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtenteResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&utente).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtenteResponse{
			Error: &s,
		})
		return
	}

	apiResource := newUtente(c, utente)
	c.JSON(http.StatusOK, UtenteResponse{Data: &apiResource})
}

// @Summary		Delete utente
// @Description	Deletes a utente
// @Tags			Utenti
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/utenti/{id} [delete]
func DeleteUtente(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var utente models.Utente
	err = models.DB.First(&utente, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&utente).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
