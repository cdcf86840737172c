package controllers

import (
	"context"
	"net/http"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/app"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

// HealthController checks DB connectivity, etc.
type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.DB.Ping(context.Background()); err != nil {
		utils.Logger.WithError(err).Error("rentals-service DB unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{Status: "OK"})
}
