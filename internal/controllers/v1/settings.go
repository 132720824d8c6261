package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgera/backend/internal/httputil"
	"github.com/ledgera/backend/internal/models"
	"gorm.io/gorm/clause"
)

type CurrentUserEditable struct {
	Name string `json:"name" example:"Giulia"` // Name of the acting household member
}

type CurrentUserResponse struct {
	Data  *CurrentUserEditable `json:"data"`                                     // The current user
	Error *string              `json:"error" example:"no current user is set"`   // The error, if any occurred
}

// RegisterSettingsRoutes registers the routes for settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/current-user", OptionsCurrentUser)
	r.GET("/current-user", GetCurrentUser)
	r.PUT("/current-user", UpdateCurrentUser)
}

// currentUser returns the name of the acting household member.
func currentUser() (string, error) {
	var setting models.Setting
	err := models.DB.First(&setting, "key = ?", models.SettingCurrentUser).Error
	if errors.Is(err, models.ErrResourceNotFound) || (err == nil && setting.Value == "") {
		return "", errCurrentUserNotSet
	}
	if err != nil {
		return "", err
	}

	return setting.Value, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings/current-user [options]
func OptionsCurrentUser(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get current user
// @Description	Returns the household member new spese are attributed to by default
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	CurrentUserResponse
// @Failure		404	{object}	CurrentUserResponse
// @Failure		500	{object}	CurrentUserResponse
// @Router			/v1/settings/current-user [get]
func GetCurrentUser(c *gin.Context) {
	name, err := currentUser()
	if errors.Is(err, errCurrentUserNotSet) {
		s := err.Error()
		c.JSON(http.StatusNotFound, CurrentUserResponse{
			Error: &s,
		})
		return
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrentUserResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CurrentUserResponse{Data: &CurrentUserEditable{Name: name}})
}

// @Summary		Set current user
// @Description	Sets the household member new spese are attributed to by default
// @Tags			Settings
// @Produce		json
// @Success		200		{object}	CurrentUserResponse
// @Failure		400		{object}	CurrentUserResponse
// @Failure		500		{object}	CurrentUserResponse
// @Param			user	body		CurrentUserEditable	true	"Current user"
// @Router			/v1/settings/current-user [put]
func UpdateCurrentUser(c *gin.Context) {
	var data CurrentUserEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrentUserResponse{
			Error: &s,
		})
		return
	}

	setting := models.Setting{
		Key:   models.SettingCurrentUser,
		Value: data.Name,
	}

	err = models.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&setting).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrentUserResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CurrentUserResponse{Data: &CurrentUserEditable{Name: setting.Value}})
}
