package v1

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/importer"
	csvparser "github.com/ledgera/backend/internal/importer/parser/csv"
	"github.com/ledgera/backend/internal/models"
	"github.com/rs/zerolog/log"
)

type ImportPreviewResponse struct {
	Data  []importer.ParsedRow `json:"data"`                                            // The parsed rows with their validation state
	Error *string              `json:"error" example:"error in line 3 of the CSV"`      // The error, if any occurred
}

type ImportExecuteResponse struct {
	Data  *importer.Result `json:"data"`                                       // Per row results of the import
	Error *string          `json:"error" example:"error in line 3 of the CSV"` // The error, if any occurred
}

// RegisterImportRoutes registers the routes for importing spese with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/spese", OptionsImportSpese)
	r.POST("/spese", ImportSpesePreview)
	r.OPTIONS("/spese/execute", OptionsImportSpese)
	r.POST("/spese/execute", ImportSpeseExecute)
	r.OPTIONS("/template", OptionsImportTemplate)
	r.GET("/template", ImportTemplate)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// parseUpload reads the uploaded CSV and validates every row against the
// current lookup tables.
func parseUpload(c *gin.Context) ([]importer.ParsedRow, error) {
	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := csvparser.Parse(f)
	if err != nil {
		return nil, err
	}

	lookups, err := importer.LoadLookups(models.DB)
	if err != nil {
		return nil, err
	}

	return importer.Validate(raw, lookups), nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/spese [options]
func OptionsImportSpese(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/template [options]
func OptionsImportTemplate(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Preview spese import
// @Description	Parses an uploaded CSV file and returns every row with its validation errors without writing anything
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ImportPreviewResponse
// @Failure		400		{object}	ImportPreviewResponse
// @Failure		500		{object}	ImportPreviewResponse
// @Param			file	formData	file	true	"CSV file to import"
// @Router			/v1/import/spese [post]
func ImportSpesePreview(c *gin.Context) {
	rows, err := parseUpload(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ImportPreviewResponse{Data: rows})
}

// @Summary		Execute spese import
// @Description	Parses an uploaded CSV file and creates a spesa for every valid row. Invalid rows are reported, they do not block the rest of the file.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportExecuteResponse
// @Failure		400		{object}	ImportExecuteResponse
// @Failure		500		{object}	ImportExecuteResponse
// @Param			file	formData	file	true	"CSV file to import"
// @Param			user	query		string	false	"Name the created spese are attributed to. Defaults to the current user setting"
// @Router			/v1/import/spese/execute [post]
func ImportSpeseExecute(c *gin.Context) {
	enteredBy := c.Query("user")
	if enteredBy == "" {
		var err error
		enteredBy, err = currentUser()
		if err != nil {
			s := err.Error()

			httpStatus := status(err)
			if errors.Is(err, errCurrentUserNotSet) {
				httpStatus = http.StatusBadRequest
			}

			c.JSON(httpStatus, ImportExecuteResponse{
				Error: &s,
			})
			return
		}
	}

	rows, err := parseUpload(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportExecuteResponse{
			Error: &s,
		})
		return
	}

	result := importer.Create(models.DB, rows, enteredBy)
	c.JSON(http.StatusCreated, ImportExecuteResponse{Data: &result})
}

// @Summary		Import template
// @Description	Returns a CSV template with the expected columns and a reference section listing the valid voce, categoria, sub-categoria and fornitore combinations
// @Tags			Import
// @Produce		text/csv
// @Success		200
// @Failure		500	{object}	httpError
// @Router			/v1/import/template [get]
func ImportTemplate(c *gin.Context) {
	lookups, err := importer.LoadLookups(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var buf bytes.Buffer
	if err := importer.Template(&buf, lookups); err != nil {
		log.Error().Msgf("failed to render import template: %v", err)
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="template-spese.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
