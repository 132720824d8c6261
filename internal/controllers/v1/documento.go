package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"github.com/ledgera/backend/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// DocumentStorage is the backend documento files are stored in. It is set
// once during startup, before the routes are attached.
var DocumentStorage storage.Backend

// RegisterDocumentoRoutes registers the routes for documenti with
// the RouterGroup that is passed.
func RegisterDocumentoRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDocumentoList)
		r.GET("", GetDocumenti)
		r.POST("", CreateDocumento)
	}

	// Documento with ID
	{
		r.OPTIONS("/:id", OptionsDocumentoDetail)
		r.GET("/:id", GetDocumento)
		r.DELETE("/:id", DeleteDocumento)
		r.GET("/:id/file", GetDocumentoFile)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Documenti
// @Success		204
// @Router			/v1/documenti [options]
func OptionsDocumentoList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Documenti
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/documenti/{id} [options]
func OptionsDocumentoDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Documento{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Upload documento
// @Description	Attaches a file to a spesa. The file is sent as multipart form data in the "file" field, the spesa ID in the "spesaId" field.
// @Tags			Documenti
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	DocumentoResponse
// @Failure		400			{object}	DocumentoResponse
// @Failure		404			{object}	DocumentoResponse
// @Failure		500			{object}	DocumentoResponse
// @Param			file		formData	file	true	"File to attach"
// @Param			spesaId		formData	string	true	"ID of the spesa"
// @Param			uploadedBy	formData	string	false	"Name of the household member uploading the file"
// @Router			/v1/documenti [post]
func CreateDocumento(c *gin.Context) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		s := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, DocumentoResponse{
			Error: &s,
		})
		return
	}
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DocumentoResponse{
			Error: &s,
		})
		return
	}

	spesaID, err := httputil.UUIDFromString(c.PostForm("spesaId"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentoResponse{
			Error: &s,
		})
		return
	}

	var spesa models.Spesa
	err = models.DB.First(&spesa, "id = ?", spesaID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentoResponse{
			Error: &s,
		})
		return
	}

	f, err := formFile.Open()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DocumentoResponse{
			Error: &s,
		})
		return
	}
	defer f.Close()

	locator, err := DocumentStorage.Store(formFile.Filename, f)
	if err != nil {
		s := models.ErrGeneral.Error()
		log.Error().Msgf("%T: %v", err, err.Error())
		c.JSON(http.StatusInternalServerError, DocumentoResponse{
			Error: &s,
		})
		return
	}

	documento := models.Documento{
		SpesaID:     spesa.ID,
		Filename:    formFile.Filename,
		StoragePath: locator,
		MIMEType:    formFile.Header.Get("Content-Type"),
		SizeBytes:   formFile.Size,
		UploadedBy:  c.PostForm("uploadedBy"),
	}

	err = models.DB.Create(&documento).Error
	if err != nil {
		// The metadata could not be stored, remove the orphaned file
		if deleteErr := DocumentStorage.Delete(locator); deleteErr != nil {
			log.Error().Msgf("failed to clean up stored file %s: %v", locator, deleteErr)
		}

		s := err.Error()
		c.JSON(status(err), DocumentoResponse{
			Error: &s,
		})
		return
	}

	data := newDocumento(c, documento)
	c.JSON(http.StatusCreated, DocumentoResponse{Data: &data})
}

// @Summary		List documenti
// @Description	Returns a list of documenti
// @Tags			Documenti
// @Produce		json
// @Success		200	{object}	DocumentoListResponse
// @Failure		400	{object}	DocumentoListResponse
// @Failure		500	{object}	DocumentoListResponse
// @Router			/v1/documenti [get]
// @Param			spesa		query	string	false	"Filter by spesa ID"
// @Param			uploadedBy	query	string	false	"Filter by the household member that uploaded the file"
// @Param			offset		query	uint	false	"The offset of the first Documento returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Documenti to return. Defaults to 50."
func GetDocumenti(c *gin.Context) {
	var filter DocumentoQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DocumentoListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentoListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("created_at DESC").
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Documenti and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var documenti []models.Documento
	err = q.Find(&documenti).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentoListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DocumentoListResponse{
			Error: &e,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	data := make([]Documento, 0)
	for _, documento := range documenti {
		data = append(data, newDocumento(c, documento))
	}

	c.JSON(http.StatusOK, DocumentoListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get documento
// @Description	Returns the metadata of a specific documento
// @Tags			Documenti
// @Produce		json
// @Success		200	{object}	DocumentoResponse
// @Failure		400	{object}	DocumentoResponse
// @Failure		404	{object}	DocumentoResponse
// @Failure		500	{object}	DocumentoResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/documenti/{id} [get]
func GetDocumento(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentoResponse{
			Error: &s,
		})
		return
	}

	var documento models.Documento
	err = models.DB.First(&documento, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentoResponse{
			Error: &s,
		})
		return
	}

	data := newDocumento(c, documento)
	c.JSON(http.StatusOK, DocumentoResponse{Data: &data})
}

// @Summary		Download documento
// @Description	Returns the file contents of a documento
// @Tags			Documenti
// @Produce		octet-stream
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/documenti/{id}/file [get]
func GetDocumentoFile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var documento models.Documento
	err = models.DB.First(&documento, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	f, err := DocumentStorage.Open(documento.StoragePath)
	if err != nil {
		log.Error().Msgf("failed to open stored file %s: %v", documento.StoragePath, err)
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}
	defer f.Close()

	mimeType := documento.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, documento.SizeBytes, mimeType, f, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", documento.Filename),
	})
}

// @Summary		Delete documento
// @Description	Deletes a documento and its stored file
// @Tags			Documenti
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/documenti/{id} [delete]
func DeleteDocumento(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var documento models.Documento
	err = models.DB.First(&documento, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&documento).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// The metadata is gone, a dangling file must not block the request
	if err := DocumentStorage.Delete(documento.StoragePath); err != nil {
		log.Error().Msgf("failed to delete stored file %s: %v", documento.StoragePath, err)
	}

	c.JSON(http.StatusNoContent, nil)
}
