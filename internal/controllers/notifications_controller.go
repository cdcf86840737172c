package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/middleware"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/services"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

type NotificationsController struct {
	notifyService *services.NotifyService
	validate      *validator.Validate
}

func NewNotificationsController(ns *services.NotifyService) *NotificationsController {
	return &NotificationsController{
		notifyService: ns,
		validate:      validator.New(),
	}
}

// ----------------------------------------------------------------
// GET /api/v1/notifications
// ----------------------------------------------------------------
func (c *NotificationsController) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	resp, err := c.notifyService.ListForUser(ctx, ctxUserID.(string))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/notifications/read
// ----------------------------------------------------------------
func (c *NotificationsController) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	var body dtos.MarkNotificationReadRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for mark-read payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			err.Error(), nil, err,
		)
		return
	}

	if err := c.notifyService.MarkRead(ctx, ctxUserID.(string), body.NotificationID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
